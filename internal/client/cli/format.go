package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

func eventLine(e *models.Event) string {
	when := e.Date.Format(models.DateLayout)
	if e.Time != "" {
		when += " " + e.Time
	}
	return fmt.Sprintf("%s  %s  %s [%s] @ %s, %s", e.ID, when, e.Title, e.Category, e.Location, e.PriceLabel())
}

func printEvent(e *models.Event) {
	printlnFn(e.Title)
	printlnFn(strings.Repeat("-", len(e.Title)))
	when := e.Date.Format(models.DateLayout)
	if e.Time != "" {
		when += " " + e.Time
	}
	printlnFn(fmt.Sprintf("ID:        %s", e.ID))
	printlnFn(fmt.Sprintf("When:      %s", when))
	printlnFn(fmt.Sprintf("Where:     %s", e.Location))
	printlnFn(fmt.Sprintf("Category:  %s", e.Category))
	printlnFn(fmt.Sprintf("Price:     %s", e.PriceLabel()))
	if e.Organizer != "" {
		printlnFn(fmt.Sprintf("Organizer: %s", e.Organizer))
	}
	if e.ImageURL != "" {
		printlnFn(fmt.Sprintf("Image:     %s", e.ImageURL))
	}
	if e.Description != "" {
		printlnFn()
		printlnFn(e.Description)
	}
}

func profileLine(p *models.Profile) string {
	name := p.FullName
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s  %-30s %-20s %s", p.ID, p.Email, name, p.Role)
}

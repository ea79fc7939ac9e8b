package main

import "github.com/borgmon/resource-timeline/pkg/models"

// Shown when no dataset is given. Use --week 2023-01-16 to see the events.
var demoResources = []models.Resource{
	{ID: 1, Name: "Resource A", Color: "#fdf500"},
	{ID: 2, Name: "Resource B", Color: "#ff0101"},
	{ID: 3, Name: "Resource C", Color: "#01adff"},
	{ID: 4, Name: "Resource D", Color: "#239a21"},
	{ID: 5, Name: "Resource E", Color: "#ff4600"},
}

var demoEvents = []models.CalendarEvent{
	{Title: "Fixed event", Start: "2023-01-19T16:00", End: "2023-01-19T18:30", Color: "#9e9e9e", Resource: 1},
	{Title: "Fixed event 2", Start: "2023-01-13T16:30", End: "2023-01-13T19:45", Color: "#9e9e9e", Resource: 4},
	{Title: "Fixed event 3", Start: "2023-01-20T08:00", End: "2023-01-20T12:00", Color: "#9e9e9e", Resource: 4},
}

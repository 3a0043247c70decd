package handlers

import (
	"log"
	"net/http"

	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

type EventRequest struct {
	EventCode   string `json:"EventCode"`
	EventName   string `json:"EventName"`
	Description string `json:"Description"`
}

type DeleteEventsRequest struct {
	EventIDs []uint `json:"eventIds"`
}

// ListEvents returns all events ordered by code
// GET /events
func ListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.List()
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, events)
	}
}

// GetEvent returns a single event
// GET /events/:id
func GetEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		event, err := svc.Get(id)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, event)
	}
}

// AddEvent creates an event
// POST /events/add
func AddEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		event, err := svc.Create(services.EventInput{
			EventCode:   req.EventCode,
			EventName:   req.EventName,
			Description: req.Description,
		})
		if err != nil {
			fail(c, err)
			return
		}
		created(c, event)
	}
}

// UpdateEvent updates an event
// PUT /events/:id
func UpdateEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		event, err := svc.Update(id, services.EventInput{
			EventCode:   req.EventCode,
			EventName:   req.EventName,
			Description: req.Description,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, event)
	}
}

// DeleteEvents bulk-deletes events and everything scoped to them
// POST /events/delete
func DeleteEvents(svc *services.BulkDeleteService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteEventsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "eventIds must be a non-empty array of IDs")
			return
		}
		count, requirementIDs, err := svc.DeleteEvents(req.EventIDs)
		if err != nil {
			fail(c, err)
			return
		}
		if search != nil && len(requirementIDs) > 0 {
			if err := search.DeleteRequirements(requirementIDs); err != nil {
				log.Printf("Failed to deindex requirements: %v", err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": count})
	}
}

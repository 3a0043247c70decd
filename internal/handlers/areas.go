package handlers

import (
	"net/http"

	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

// AddAreaRequest carries the wizard's historical field name EventChildID for
// the owning event; the frontend has always sent it that way.
type AddAreaRequest struct {
	EventChildID uint   `json:"EventChildID"`
	AreaCode     string `json:"AreaCode"`
	AreaName     string `json:"AreaName"`
	Description  string `json:"Description"`
	SortOrder    int    `json:"SortOrder"`
}

type UpdateAreaRequest struct {
	AreaCode    string `json:"AreaCode"`
	AreaName    string `json:"AreaName"`
	Description string `json:"Description"`
	SortOrder   int    `json:"SortOrder"`
}

// AddArea creates an area under an event
// POST /areas/add
func AddArea(svc *services.AreaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddAreaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		area, err := svc.Create(services.AreaInput{
			EventID:     req.EventChildID,
			AreaCode:    req.AreaCode,
			AreaName:    req.AreaName,
			Description: req.Description,
			SortOrder:   req.SortOrder,
		})
		if err != nil {
			fail(c, err)
			return
		}
		created(c, area)
	}
}

// ListAreas returns all active areas ordered by SortOrder
// GET /areas
func ListAreas(svc *services.AreaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		areas, err := svc.List()
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, areas)
	}
}

// ListAreasByEvent returns an event's active areas
// GET /areas/event/:eventId
func ListAreasByEvent(svc *services.AreaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, valid := pathID(c, "eventId")
		if !valid {
			return
		}
		areas, err := svc.ListByEvent(eventID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, areas)
	}
}

// UpdateArea updates an area
// PUT /areas/:id
func UpdateArea(svc *services.AreaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		var req UpdateAreaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		area, err := svc.Update(id, services.AreaInput{
			AreaCode:    req.AreaCode,
			AreaName:    req.AreaName,
			Description: req.Description,
			SortOrder:   req.SortOrder,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, area)
	}
}

// DeactivateArea soft-deletes an area
// DELETE /areas/:id
func DeactivateArea(svc *services.AreaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		if err := svc.Deactivate(id); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Area deactivated"})
	}
}

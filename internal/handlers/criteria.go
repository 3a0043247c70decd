package handlers

import (
	"log"
	"net/http"

	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

// CriteriaRequest accepts AreaID and ParentCriteriaID as whatever the
// frontend sends: a number, a numeric string, "", "null", or nothing. The
// service normalizes all of those to a nullable ID.
type CriteriaRequest struct {
	EventID          uint   `json:"EventID"`
	AreaID           any    `json:"AreaID"`
	ParentCriteriaID any    `json:"ParentCriteriaID"`
	CriteriaCode     string `json:"CriteriaCode"`
	CriteriaName     string `json:"CriteriaName"`
	Description      string `json:"Description"`
}

type DeleteCriteriaRequest struct {
	CriteriaIDs []uint `json:"criteriaIds"`
}

func (r CriteriaRequest) toInput() services.CriteriaInput {
	return services.CriteriaInput{
		EventID:          r.EventID,
		AreaID:           services.NormalizeOptionalID(r.AreaID),
		ParentCriteriaID: services.NormalizeOptionalID(r.ParentCriteriaID),
		CriteriaCode:     r.CriteriaCode,
		CriteriaName:     r.CriteriaName,
		Description:      r.Description,
	}
}

// AddCriteria creates a criteria node
// POST /criteria/add
func AddCriteria(svc *services.CriteriaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CriteriaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		criteria, err := svc.Create(req.toInput())
		if err != nil {
			fail(c, err)
			return
		}
		created(c, criteria)
	}
}

// UpdateCriteria updates a criteria node
// PUT /criteria/:id
func UpdateCriteria(svc *services.CriteriaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		var req CriteriaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		criteria, err := svc.Update(id, req.toInput())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, criteria)
	}
}

// DeleteCriteria bulk-deletes criteria and their requirements
// DELETE /criteria/delete
func DeleteCriteria(svc *services.BulkDeleteService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteCriteriaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "criteriaIds must be a non-empty array of IDs")
			return
		}
		count, requirementIDs, err := svc.DeleteCriteria(req.CriteriaIDs)
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

// ListCriteriaByArea returns an area's active criteria
// GET /criteria/area/:areaId
func ListCriteriaByArea(svc *services.CriteriaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		areaID, valid := pathID(c, "areaId")
		if !valid {
			return
		}
		criteria, err := svc.ListByArea(areaID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, criteria)
	}
}

// ListCriteriaByEvent returns an event's criteria joined with event fields
// GET /criteria/event/:eventId
func ListCriteriaByEvent(svc *services.CriteriaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, valid := pathID(c, "eventId")
		if !valid {
			return
		}
		criteria, err := svc.ListByEvent(eventID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, criteria)
	}
}

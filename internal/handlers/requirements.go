package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

type RequirementRequest struct {
	RequirementCode       string  `json:"RequirementCode"`
	Description           string  `json:"Description"`
	CriteriaID            uint    `json:"CriteriaID"`
	ParentRequirementCode *string `json:"ParentRequirementCode"`
}

type DeleteRequirementsRequest struct {
	RequirementIDs []uint `json:"requirementIds"`
}

func (r RequirementRequest) toInput() services.RequirementInput {
	return services.RequirementInput{
		RequirementCode:       r.RequirementCode,
		Description:           r.Description,
		CriteriaID:            r.CriteriaID,
		ParentRequirementCode: r.ParentRequirementCode,
	}
}

// indexRequirement pushes the joined row into the search index so the
// event/area filters work on fresh writes, not just after a full reindex.
func indexRequirement(search *services.SearchService, svc *services.RequirementService, id uint) {
	if search == nil {
		return
	}
	view, err := svc.GetView(id)
	if err != nil {
		log.Printf("Failed to load requirement %d for indexing: %v", id, err)
		return
	}
	if err := search.IndexRequirement(*view); err != nil {
		log.Printf("Failed to index requirement %d: %v", id, err)
	}
}

// ListAllRequirements returns joined requirement rows, optionally filtered
// GET /requirements/all?eventId=
func ListAllRequirements(svc *services.RequirementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var eventID *uint
		if raw := c.Query("eventId"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				badRequest(c, "Invalid eventId")
				return
			}
			id := uint(n)
			eventID = &id
		}
		views, err := svc.ListAll(eventID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, views)
	}
}

// ListRequirementsByEvent returns an event's joined requirement rows
// GET /requirements/event/:eventId
func ListRequirementsByEvent(svc *services.RequirementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, valid := pathID(c, "eventId")
		if !valid {
			return
		}
		views, err := svc.ListByEvent(eventID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, views)
	}
}

// ListRequirementsByCriteria returns a criteria's requirements
// GET /requirements/criteria/:criteriaId
func ListRequirementsByCriteria(svc *services.RequirementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteriaID, valid := pathID(c, "criteriaId")
		if !valid {
			return
		}
		reqs, err := svc.ListByCriteria(criteriaID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, reqs)
	}
}

// AddRequirement creates a requirement, deriving its code
// POST /requirements/add
func AddRequirement(svc *services.RequirementService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RequirementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		requirement, err := svc.Create(req.toInput())
		if err != nil {
			fail(c, err)
			return
		}
		indexRequirement(search, svc, requirement.RequirementID)
		created(c, requirement)
	}
}

// UpdateRequirement updates a requirement, re-deriving its code
// PUT /requirements/update/:id
func UpdateRequirement(svc *services.RequirementService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id")
		if !valid {
			return
		}
		var req RequirementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		requirement, err := svc.Update(id, req.toInput())
		if err != nil {
			fail(c, err)
			return
		}
		indexRequirement(search, svc, requirement.RequirementID)
		ok(c, requirement)
	}
}

// DeleteRequirements bulk-deletes requirements and their descendants
// POST /requirements/delete
func DeleteRequirements(svc *services.BulkDeleteService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteRequirementsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "requirementIds must be a non-empty array of IDs")
			return
		}
		count, deletedIDs, err := svc.DeleteRequirements(req.RequirementIDs)
		if err != nil {
			fail(c, err)
			return
		}
		if search != nil && len(deletedIDs) > 0 {
			if err := search.DeleteRequirements(deletedIDs); err != nil {
				log.Printf("Failed to deindex requirements: %v", err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": count})
	}
}

// SearchRequirements queries the full-text index
// GET /requirements/search?q=&eventId=
func SearchRequirements(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			badRequest(c, "Query parameter q is required")
			return
		}
		var eventID *uint
		if raw := c.Query("eventId"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				badRequest(c, "Invalid eventId")
				return
			}
			id := uint(n)
			eventID = &id
		}
		hits, err := search.SearchRequirements(query, eventID, 50)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, hits)
	}
}

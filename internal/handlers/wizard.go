package handlers

import (
	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-gonic/gin"
)

type WizardRequest struct {
	EventCode   string              `json:"EventCode"`
	EventName   string              `json:"EventName"`
	Description string              `json:"Description"`
	Areas       []WizardAreaRequest `json:"Areas"`
}

type WizardAreaRequest struct {
	AreaCode    string                  `json:"AreaCode"`
	AreaName    string                  `json:"AreaName"`
	Description string                  `json:"Description"`
	SortOrder   int                     `json:"SortOrder"`
	Criteria    []WizardCriteriaRequest `json:"Criteria"`
}

type WizardCriteriaRequest struct {
	CriteriaCode string                     `json:"CriteriaCode"`
	CriteriaName string                     `json:"CriteriaName"`
	Description  string                     `json:"Description"`
	Requirements []WizardRequirementRequest `json:"Requirements"`
}

type WizardRequirementRequest struct {
	RequirementCode       string  `json:"RequirementCode"`
	Description           string  `json:"Description"`
	ParentRequirementCode *string `json:"ParentRequirementCode"`
}

// RunSetupWizard creates a whole framework (event, areas, criteria,
// requirements) atomically
// POST /setup/wizard
func RunSetupWizard(svc *services.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WizardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		input := services.WizardInput{
			Event: services.EventInput{
				EventCode:   req.EventCode,
				EventName:   req.EventName,
				Description: req.Description,
			},
		}
		for _, a := range req.Areas {
			area := services.WizardArea{
				AreaCode:    a.AreaCode,
				AreaName:    a.AreaName,
				Description: a.Description,
				SortOrder:   a.SortOrder,
			}
			for _, cr := range a.Criteria {
				criteria := services.WizardCriteria{
					CriteriaCode: cr.CriteriaCode,
					CriteriaName: cr.CriteriaName,
					Description:  cr.Description,
				}
				for _, r := range cr.Requirements {
					criteria.Requirements = append(criteria.Requirements, services.WizardRequirement{
						RequirementCode:       r.RequirementCode,
						Description:           r.Description,
						ParentRequirementCode: r.ParentRequirementCode,
					})
				}
				area.Criteria = append(area.Criteria, criteria)
			}
			input.Areas = append(input.Areas, area)
		}

		result, err := svc.Execute(input)
		if err != nil {
			fail(c, err)
			return
		}
		created(c, result)
	}
}

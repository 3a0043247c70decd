package services

import (
	"strings"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

// WizardInput is the full payload of the multi-step setup wizard: one event
// with its areas, their criteria, and the criteria's requirements, created in
// a single transaction. Any failure rolls the whole framework back.
type WizardInput struct {
	Event EventInput
	Areas []WizardArea
}

type WizardArea struct {
	AreaCode    string
	AreaName    string
	Description string
	SortOrder   int
	Criteria    []WizardCriteria
}

type WizardCriteria struct {
	CriteriaCode string
	CriteriaName string
	Description  string
	Requirements []WizardRequirement
}

type WizardRequirement struct {
	RequirementCode       string
	Description           string
	ParentRequirementCode *string
}

type WizardResult struct {
	Event        models.Event         `json:"event"`
	Areas        []models.Area        `json:"areas"`
	Criteria     []models.Criteria    `json:"criteria"`
	Requirements []models.Requirement `json:"requirements"`
}

type WizardService struct {
	store repository.Store
}

func NewWizardService(store repository.Store) *WizardService {
	return &WizardService{store: store}
}

func (s *WizardService) Execute(in WizardInput) (*WizardResult, error) {
	var result WizardResult
	err := s.store.Transact(func(tx repository.Store) error {
		events := NewEventService(tx)
		areas := NewAreaService(tx)
		criteria := NewCriteriaService(tx)
		requirements := NewRequirementService(tx)

		event, err := events.Create(in.Event)
		if err != nil {
			return err
		}
		result.Event = *event

		for _, wa := range in.Areas {
			area, err := areas.Create(AreaInput{
				EventID:     event.EventID,
				AreaCode:    wa.AreaCode,
				AreaName:    wa.AreaName,
				Description: wa.Description,
				SortOrder:   wa.SortOrder,
			})
			if err != nil {
				return err
			}
			result.Areas = append(result.Areas, *area)

			for _, wc := range wa.Criteria {
				crit, err := criteria.Create(CriteriaInput{
					EventID:      event.EventID,
					AreaID:       &area.AreaID,
					CriteriaCode: wc.CriteriaCode,
					CriteriaName: wc.CriteriaName,
					Description:  wc.Description,
				})
				if err != nil {
					return err
				}
				result.Criteria = append(result.Criteria, *crit)

				for _, wr := range wc.Requirements {
					req, err := s.createRequirement(requirements, tx, crit, wr)
					if err != nil {
						return err
					}
					result.Requirements = append(result.Requirements, *req)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// createRequirement relaxes the add-endpoint rule that a top-level code is
// required: inside the wizard an omitted code auto-numbers under the owning
// criteria code, so the first blank requirement of criteria A1.C1 becomes
// A1.C1.1.
func (s *WizardService) createRequirement(requirements *RequirementService, tx repository.Store, crit *models.Criteria, wr WizardRequirement) (*models.Requirement, error) {
	code := strings.TrimSpace(wr.RequirementCode)
	if code == "" && wr.ParentRequirementCode == nil {
		existing, err := tx.FindRequirementsByCriteria(crit.CriteriaID)
		if err != nil {
			return nil, err
		}
		// only top-level rows count as siblings here; a deep child's suffix
		// must not inflate the next top-level number
		codes := make([]string, 0, len(existing))
		for _, r := range existing {
			if r.ParentRequirementID != nil {
				continue
			}
			codes = append(codes, r.RequirementCode)
		}
		code = NextChildCode(crit.CriteriaCode, codes)
	}
	return requirements.Create(RequirementInput{
		RequirementCode:       code,
		Description:           wr.Description,
		CriteriaID:            crit.CriteriaID,
		ParentRequirementCode: wr.ParentRequirementCode,
	})
}

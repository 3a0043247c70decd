package services

import (
	"testing"

	"github.com/qualitrack/qualitrack-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardCreatesFullFramework(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewWizardService(store)

	result, err := svc.Execute(WizardInput{
		Event: EventInput{EventCode: "ACC26", EventName: "Accreditation 2026"},
		Areas: []WizardArea{
			{
				AreaCode: "A1",
				AreaName: "Governance",
				Criteria: []WizardCriteria{
					{
						CriteriaCode: "A1.C1",
						CriteriaName: "Leadership",
						Description:  "Leadership and planning",
						Requirements: []WizardRequirement{
							{Description: "Strategic plan on file"},
							{Description: "Org chart posted"},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ACC26", result.Event.EventCode)
	require.Len(t, result.Areas, 1)
	require.Len(t, result.Criteria, 1)
	require.Len(t, result.Requirements, 2)

	// blank codes auto-number under the owning criteria code
	assert.Equal(t, "A1.C1.1", result.Requirements[0].RequirementCode)
	assert.Equal(t, "A1.C1.2", result.Requirements[1].RequirementCode)

	assert.Equal(t, result.Event.EventID, result.Areas[0].EventID)
	require.NotNil(t, result.Criteria[0].AreaID)
	assert.Equal(t, result.Areas[0].AreaID, *result.Criteria[0].AreaID)

	// persisted, not just returned
	views, err := store.FindRequirementsByEvent(result.Event.EventID)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestWizardNestsRequirementsUnderParents(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewWizardService(store)

	result, err := svc.Execute(WizardInput{
		Event: EventInput{EventCode: "ACC26", EventName: "Accreditation 2026"},
		Areas: []WizardArea{
			{
				AreaCode: "A1",
				AreaName: "Governance",
				Criteria: []WizardCriteria{
					{
						CriteriaCode: "A1.C1",
						CriteriaName: "Leadership",
						Description:  "Leadership and planning",
						Requirements: []WizardRequirement{
							{RequirementCode: "1", Description: "Parent"},
							{Description: "Child", ParentRequirementCode: strPtr("A1.C1.1")},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Requirements, 2)
	parent, child := result.Requirements[0], result.Requirements[1]
	assert.Equal(t, "A1.C1.1", parent.RequirementCode)
	assert.Equal(t, "A1.C1.1.1", child.RequirementCode)
	require.NotNil(t, child.ParentRequirementID)
	assert.Equal(t, parent.RequirementID, *child.ParentRequirementID)
}

func TestWizardAutoNumberingIgnoresNestedRows(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewWizardService(store)

	// a deep child with a high suffix must not inflate the next top-level
	// number: after A1.C1.1 and its child A1.C1.1.5, a blank code is A1.C1.2
	result, err := svc.Execute(WizardInput{
		Event: EventInput{EventCode: "ACC26", EventName: "Accreditation 2026"},
		Areas: []WizardArea{
			{
				AreaCode: "A1",
				AreaName: "Governance",
				Criteria: []WizardCriteria{
					{
						CriteriaCode: "A1.C1",
						CriteriaName: "Leadership",
						Description:  "d",
						Requirements: []WizardRequirement{
							{RequirementCode: "1", Description: "top"},
							{RequirementCode: "5", Description: "deep", ParentRequirementCode: strPtr("A1.C1.1")},
							{Description: "blank"},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Requirements, 3)
	assert.Equal(t, "A1.C1.1", result.Requirements[0].RequirementCode)
	assert.Equal(t, "A1.C1.1.5", result.Requirements[1].RequirementCode)
	assert.Equal(t, "A1.C1.2", result.Requirements[2].RequirementCode)
}

func TestWizardRollsBackOnFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewWizardService(store)

	// the second criteria is invalid, so nothing from the first may survive
	_, err := svc.Execute(WizardInput{
		Event: EventInput{EventCode: "ACC26", EventName: "Accreditation 2026"},
		Areas: []WizardArea{
			{
				AreaCode: "A1",
				AreaName: "Governance",
				Criteria: []WizardCriteria{
					{CriteriaCode: "A1.C1", CriteriaName: "Leadership", Description: "ok"},
					{CriteriaCode: "", CriteriaName: "Broken", Description: "missing code"},
				},
			},
		},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	events, listErr := store.ListEvents()
	require.NoError(t, listErr)
	assert.Empty(t, events)

	areas, listErr := store.ListAreas()
	require.NoError(t, listErr)
	assert.Empty(t, areas)
}

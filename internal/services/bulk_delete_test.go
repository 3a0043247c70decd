package services

import (
	"testing"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkDeleteRejectsEmptyIDs(t *testing.T) {
	svc := NewBulkDeleteService(repository.NewMemoryStore())

	var verr *ValidationError

	_, _, err := svc.DeleteEvents(nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "eventIds must be a non-empty array of IDs", verr.Message)

	_, _, err = svc.DeleteCriteria([]uint{})
	require.ErrorAs(t, err, &verr)

	_, _, err = svc.DeleteRequirements(nil)
	require.ErrorAs(t, err, &verr)

	_, err = svc.DeleteHeads(nil)
	require.ErrorAs(t, err, &verr)
}

func TestBulkDeleteEventsRoundTrip(t *testing.T) {
	store := repository.NewMemoryStore()
	events := NewEventService(store)
	svc := NewBulkDeleteService(store)

	a, err := events.Create(EventInput{EventCode: "E1", EventName: "First"})
	require.NoError(t, err)
	b, err := events.Create(EventInput{EventCode: "E2", EventName: "Second"})
	require.NoError(t, err)

	count, _, err := svc.DeleteEvents([]uint{a.EventID, b.EventID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := events.List()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// deleting already-gone rows is not an error
	count, _, err = svc.DeleteEvents([]uint{a.EventID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBulkDeleteEventsCascadesScopedRows(t *testing.T) {
	store, criteriaID := seedCriteria(t, "A1.C1")
	areas := NewAreaService(store)
	requirements := NewRequirementService(store)
	svc := NewBulkDeleteService(store)

	crit, err := store.GetCriteria(criteriaID)
	require.NoError(t, err)
	eventID := crit.EventID

	area, err := areas.Create(AreaInput{EventID: eventID, AreaCode: "A1", AreaName: "Governance"})
	require.NoError(t, err)
	req, err := requirements.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: criteriaID})
	require.NoError(t, err)

	count, deletedReqs, err := svc.DeleteEvents([]uint{eventID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.ElementsMatch(t, []uint{req.RequirementID}, deletedReqs)

	// nothing scoped to the event survives
	_, err = store.GetEvent(eventID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetArea(area.AreaID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetCriteria(criteriaID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetRequirement(req.RequirementID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBulkDeleteCriteriaCascadesToRequirements(t *testing.T) {
	store, criteriaID := seedCriteria(t, "A1.C1")
	requirements := NewRequirementService(store)
	svc := NewBulkDeleteService(store)

	r1, err := requirements.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: criteriaID})
	require.NoError(t, err)
	r2, err := requirements.Create(RequirementInput{
		Description:           "b",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr(r1.RequirementCode),
	})
	require.NoError(t, err)

	count, deletedReqs, err := svc.DeleteCriteria([]uint{criteriaID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.ElementsMatch(t, []uint{r1.RequirementID, r2.RequirementID}, deletedReqs)

	_, err = store.GetCriteria(criteriaID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetRequirement(r1.RequirementID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBulkDeleteCriteriaCascadesToChildCriteria(t *testing.T) {
	store, parentID := seedCriteria(t, "A1.C1")
	requirements := NewRequirementService(store)
	svc := NewBulkDeleteService(store)

	parent, err := store.GetCriteria(parentID)
	require.NoError(t, err)

	child := models.Criteria{
		EventID:          parent.EventID,
		ParentCriteriaID: &parent.CriteriaID,
		CriteriaCode:     "A1.C1.1",
		CriteriaName:     "Sub",
		Description:      "d",
		IsActive:         true,
	}
	require.NoError(t, store.InsertCriteria(&child))

	childReq, err := requirements.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: child.CriteriaID})
	require.NoError(t, err)

	count, deletedReqs, err := svc.DeleteCriteria([]uint{parentID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.ElementsMatch(t, []uint{childReq.RequirementID}, deletedReqs)

	// no child criteria is left referencing a deleted parent
	_, err = store.GetCriteria(child.CriteriaID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetRequirement(childReq.RequirementID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBulkDeleteRequirementsCascadesToDescendants(t *testing.T) {
	store, criteriaID := seedCriteria(t, "A1.C1")
	requirements := NewRequirementService(store)
	svc := NewBulkDeleteService(store)

	root, err := requirements.Create(RequirementInput{RequirementCode: "1", Description: "root", CriteriaID: criteriaID})
	require.NoError(t, err)
	child, err := requirements.Create(RequirementInput{
		Description:           "child",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr(root.RequirementCode),
	})
	require.NoError(t, err)
	grandchild, err := requirements.Create(RequirementInput{
		Description:           "grandchild",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr(child.RequirementCode),
	})
	require.NoError(t, err)
	sibling, err := requirements.Create(RequirementInput{RequirementCode: "2", Description: "kept", CriteriaID: criteriaID})
	require.NoError(t, err)

	count, deleted, err := svc.DeleteRequirements([]uint{root.RequirementID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.ElementsMatch(t, []uint{root.RequirementID, child.RequirementID, grandchild.RequirementID}, deleted)

	// unrelated rows survive
	kept, err := store.GetRequirement(sibling.RequirementID)
	require.NoError(t, err)
	assert.Equal(t, "A1.C1.2", kept.RequirementCode)
}

func TestBulkDeleteHeads(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBulkDeleteService(store)

	id := store.AddHead(models.HeadOfOffice{HeadName: "Ana Reyes", Email: "ana@example.edu", OfficeID: 1})

	count, err := svc.DeleteHeads([]uint{id, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

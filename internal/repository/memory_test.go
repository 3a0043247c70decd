package repository

import (
	"errors"
	"testing"

	"github.com/qualitrack/qualitrack-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFramework(t *testing.T) (*MemoryStore, models.Event, models.Area, models.Criteria) {
	t.Helper()
	store := NewMemoryStore()

	event := models.Event{EventCode: "E1", EventName: "Accreditation 2026"}
	require.NoError(t, store.InsertEvent(&event))

	area := models.Area{EventID: event.EventID, AreaCode: "A1", AreaName: "Governance", SortOrder: 1, IsActive: true}
	require.NoError(t, store.InsertArea(&area))

	criteria := models.Criteria{
		EventID:      event.EventID,
		AreaID:       &area.AreaID,
		CriteriaCode: "A1.C1",
		CriteriaName: "Leadership",
		Description:  "Leadership and planning",
		IsActive:     true,
	}
	require.NoError(t, store.InsertCriteria(&criteria))

	return store, event, area, criteria
}

func TestMemoryStoreDuplicateRequirementCode(t *testing.T) {
	store, _, _, criteria := seedFramework(t)

	first := models.Requirement{RequirementCode: "A1.C1.1", Description: "a", CriteriaID: criteria.CriteriaID}
	require.NoError(t, store.InsertRequirement(&first))

	dup := models.Requirement{RequirementCode: "A1.C1.1", Description: "b", CriteriaID: criteria.CriteriaID}
	assert.ErrorIs(t, store.InsertRequirement(&dup), ErrDuplicate)

	// same code under a different criteria is fine
	other := models.Criteria{EventID: criteria.EventID, CriteriaCode: "A1.C2", CriteriaName: "Other", Description: "d", IsActive: true}
	require.NoError(t, store.InsertCriteria(&other))
	cross := models.Requirement{RequirementCode: "A1.C1.1", Description: "c", CriteriaID: other.CriteriaID}
	require.NoError(t, store.InsertRequirement(&cross))

	// an update may not collide either
	second := models.Requirement{RequirementCode: "A1.C1.2", Description: "d", CriteriaID: criteria.CriteriaID}
	require.NoError(t, store.InsertRequirement(&second))
	affected, err := store.UpdateRequirement(second.RequirementID, models.Requirement{
		RequirementCode: "A1.C1.1",
		Description:     "d",
		CriteriaID:      criteria.CriteriaID,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, int64(0), affected)
}

func TestMemoryStoreReadsAreIdempotent(t *testing.T) {
	store, event, _, criteria := seedFramework(t)

	req := models.Requirement{RequirementCode: "A1.C1.1", Description: "a", CriteriaID: criteria.CriteriaID}
	require.NoError(t, store.InsertRequirement(&req))

	first, err := store.FindRequirementsByEvent(event.EventID)
	require.NoError(t, err)
	second, err := store.FindRequirementsByEvent(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := store.GetRequirement(req.RequirementID)
	require.NoError(t, err)
	again, err := store.GetRequirement(req.RequirementID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestMemoryStoreRequirementViewJoins(t *testing.T) {
	store, event, area, criteria := seedFramework(t)

	req := models.Requirement{RequirementCode: "A1.C1.1", Description: "a", CriteriaID: criteria.CriteriaID}
	require.NoError(t, store.InsertRequirement(&req))

	views, err := store.FindRequirementsAll()
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, req.RequirementID, v.RequirementID)
	assert.Equal(t, "A1.C1", v.CriteriaCode)
	assert.Equal(t, "Leadership", v.CriteriaName)
	assert.Equal(t, event.EventID, v.EventID)
	assert.Equal(t, "E1", v.EventCode)
	require.NotNil(t, v.AreaCode)
	assert.Equal(t, "A1", *v.AreaCode)
	require.NotNil(t, v.SortOrder)
	assert.Equal(t, area.SortOrder, *v.SortOrder)
}

func TestMemoryStoreAreaOrderingAndDeactivate(t *testing.T) {
	store := NewMemoryStore()

	event := models.Event{EventCode: "E1", EventName: "Accreditation 2026"}
	require.NoError(t, store.InsertEvent(&event))

	late := models.Area{EventID: event.EventID, AreaCode: "A2", AreaName: "Second", SortOrder: 5, IsActive: true}
	require.NoError(t, store.InsertArea(&late))
	early := models.Area{EventID: event.EventID, AreaCode: "A1", AreaName: "First", SortOrder: 1, IsActive: true}
	require.NoError(t, store.InsertArea(&early))

	areas, err := store.FindAreasByEvent(event.EventID)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "A1", areas[0].AreaCode)
	assert.Equal(t, "A2", areas[1].AreaCode)

	affected, err := store.DeactivateArea(early.AreaID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// deactivated rows drop out of listings but remain fetchable by id
	areas, err = store.FindAreasByEvent(event.EventID)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "A2", areas[0].AreaCode)

	kept, err := store.GetArea(early.AreaID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)

	// a second deactivate affects nothing
	affected, err = store.DeactivateArea(early.AreaID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestMemoryStoreFindRequirementsByParent(t *testing.T) {
	store, _, _, criteria := seedFramework(t)

	parent := models.Requirement{RequirementCode: "A1.C1.1", Description: "p", CriteriaID: criteria.CriteriaID}
	require.NoError(t, store.InsertRequirement(&parent))

	for _, code := range []string{"A1.C1.1.1", "A1.C1.1.2"} {
		child := models.Requirement{
			RequirementCode:       code,
			Description:           "c",
			CriteriaID:            criteria.CriteriaID,
			ParentRequirementID:   &parent.RequirementID,
			ParentRequirementCode: &parent.RequirementCode,
		}
		require.NoError(t, store.InsertRequirement(&child))
	}

	children, err := store.FindRequirementsByParent(parent.RequirementID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	// descending code order
	assert.Equal(t, "A1.C1.1.2", children[0].RequirementCode)
	assert.Equal(t, "A1.C1.1.1", children[1].RequirementCode)

	none, err := store.FindRequirementsByParent(999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreTransactRollback(t *testing.T) {
	store, _, _, criteria := seedFramework(t)

	boom := errors.New("boom")
	err := store.Transact(func(tx Store) error {
		req := models.Requirement{RequirementCode: "A1.C1.1", Description: "a", CriteriaID: criteria.CriteriaID}
		if err := tx.InsertRequirement(&req); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	reqs, err := store.FindRequirementsByCriteria(criteria.CriteriaID)
	require.NoError(t, err)
	assert.Empty(t, reqs)

	// a clean transaction commits
	err = store.Transact(func(tx Store) error {
		req := models.Requirement{RequirementCode: "A1.C1.1", Description: "a", CriteriaID: criteria.CriteriaID}
		return tx.InsertRequirement(&req)
	})
	require.NoError(t, err)

	reqs, err = store.FindRequirementsByCriteria(criteria.CriteriaID)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

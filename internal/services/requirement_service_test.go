package services

import (
	"strings"
	"testing"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCriteria creates an event and one criteria with the given code,
// returning the store and the criteria ID.
func seedCriteria(t *testing.T, criteriaCode string) (*repository.MemoryStore, uint) {
	t.Helper()
	store := repository.NewMemoryStore()

	event := models.Event{EventCode: "E1", EventName: "Accreditation 2026"}
	require.NoError(t, store.InsertEvent(&event))

	criteria := models.Criteria{
		EventID:      event.EventID,
		CriteriaCode: criteriaCode,
		CriteriaName: "Curriculum",
		Description:  "Curriculum standards",
		IsActive:     true,
	}
	require.NoError(t, store.InsertCriteria(&criteria))
	return store, criteria.CriteriaID
}

func TestRequirementCreateTopLevel(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	req, err := svc.Create(RequirementInput{
		RequirementCode: "2",
		Description:     "Syllabus on file",
		CriteriaID:      criteriaID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.2", req.RequirementCode)
	assert.Nil(t, req.ParentRequirementID)
	assert.NotZero(t, req.RequirementID)
}

func TestRequirementCreateAutoSuffixUnderParent(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	parent, err := svc.Create(RequirementInput{
		RequirementCode: "1",
		Description:     "Parent item",
		CriteriaID:      criteriaID,
	})
	require.NoError(t, err)
	require.Equal(t, "CUR.4.1", parent.RequirementCode)

	// First child with an empty code gets suffix 1
	child, err := svc.Create(RequirementInput{
		Description:           "First child",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.1.1", child.RequirementCode)
	require.NotNil(t, child.ParentRequirementID)
	assert.Equal(t, parent.RequirementID, *child.ParentRequirementID)
	require.NotNil(t, child.ParentRequirementCode)
	assert.Equal(t, "CUR.4.1", *child.ParentRequirementCode)

	// Next child continues past the highest existing suffix
	_, err = svc.Create(RequirementInput{
		RequirementCode:       "5",
		Description:           "Manually numbered child",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1"),
	})
	require.NoError(t, err)

	next, err := svc.Create(RequirementInput{
		Description:           "Auto numbered child",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.1.6", next.RequirementCode)
}

func TestRequirementCreateValidation(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	var verr *ValidationError

	_, err := svc.Create(RequirementInput{CriteriaID: criteriaID})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Description", verr.Field)

	_, err = svc.Create(RequirementInput{Description: "d"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "CriteriaID", verr.Field)

	_, err = svc.Create(RequirementInput{Description: "d", CriteriaID: criteriaID})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Requirement code is required", verr.Message)

	_, err = svc.Create(RequirementInput{Description: "d", CriteriaID: 999, RequirementCode: "1"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Criteria not found", verr.Message)

	_, err = svc.Create(RequirementInput{
		Description:           "d",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.99"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Parent requirement not found", verr.Message)
}

func TestRequirementCreateDuplicateCodeConflict(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	_, err := svc.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: criteriaID})
	require.NoError(t, err)

	_, err = svc.Create(RequirementInput{RequirementCode: "1", Description: "b", CriteriaID: criteriaID})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRequirementUpdateNotFound(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	_, err := svc.Update(42, RequirementInput{
		RequirementCode: "1",
		Description:     "d",
		CriteriaID:      criteriaID,
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Requirement", notFound.Resource)

	// store unchanged
	reqs, err := store.FindRequirementsByCriteria(criteriaID)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestRequirementUpdateRederivesCode(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	req, err := svc.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: criteriaID})
	require.NoError(t, err)

	updated, err := svc.Update(req.RequirementID, RequirementInput{
		RequirementCode: "7",
		Description:     "a, renumbered",
		CriteriaID:      criteriaID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.7", updated.RequirementCode)
	assert.Equal(t, "a, renumbered", updated.Description)
}

func TestRequirementUpdateRepointsChildren(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	parent, err := svc.Create(RequirementInput{RequirementCode: "1", Description: "p", CriteriaID: criteriaID})
	require.NoError(t, err)
	child, err := svc.Create(RequirementInput{
		Description:           "c",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1"),
	})
	require.NoError(t, err)
	grandchild, err := svc.Create(RequirementInput{
		Description:           "g",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1.1"),
	})
	require.NoError(t, err)

	_, err = svc.Update(parent.RequirementID, RequirementInput{
		RequirementCode: "2",
		Description:     "p",
		CriteriaID:      criteriaID,
	})
	require.NoError(t, err)

	// the whole subtree is renumbered under the new parent code
	reloaded, err := svc.Get(child.RequirementID)
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.2.1", reloaded.RequirementCode)
	require.NotNil(t, reloaded.ParentRequirementCode)
	assert.Equal(t, "CUR.4.2", *reloaded.ParentRequirementCode)
	assert.True(t, strings.HasPrefix(reloaded.RequirementCode, *reloaded.ParentRequirementCode+"."))

	deep, err := svc.Get(grandchild.RequirementID)
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.2.1.1", deep.RequirementCode)
	require.NotNil(t, deep.ParentRequirementCode)
	assert.Equal(t, "CUR.4.2.1", *deep.ParentRequirementCode)
}

func TestRequirementGetViewJoinsEvent(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	req, err := svc.Create(RequirementInput{RequirementCode: "1", Description: "a", CriteriaID: criteriaID})
	require.NoError(t, err)

	view, err := svc.GetView(req.RequirementID)
	require.NoError(t, err)
	assert.Equal(t, "CUR.4.1", view.RequirementCode)
	assert.Equal(t, "CUR.4", view.CriteriaCode)
	assert.NotZero(t, view.EventID)
	assert.Equal(t, "E1", view.EventCode)

	var notFound *NotFoundError
	_, err = svc.GetView(999)
	require.ErrorAs(t, err, &notFound)
}

func TestRequirementUpdateRejectsCycle(t *testing.T) {
	store, criteriaID := seedCriteria(t, "CUR.4")
	svc := NewRequirementService(store)

	parent, err := svc.Create(RequirementInput{RequirementCode: "1", Description: "p", CriteriaID: criteriaID})
	require.NoError(t, err)
	child, err := svc.Create(RequirementInput{
		Description:           "c",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr("CUR.4.1"),
	})
	require.NoError(t, err)

	var cycle *CycleError

	// a node cannot become its own parent
	_, err = svc.Update(parent.RequirementID, RequirementInput{
		Description:           "p",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr(parent.RequirementCode),
	})
	require.ErrorAs(t, err, &cycle)

	// nor may it move under one of its descendants
	_, err = svc.Update(parent.RequirementID, RequirementInput{
		Description:           "p",
		CriteriaID:            criteriaID,
		ParentRequirementCode: strPtr(child.RequirementCode),
	})
	require.ErrorAs(t, err, &cycle)
}

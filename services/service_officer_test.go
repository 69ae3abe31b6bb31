package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"agrisathi/internal/apperr"
	"agrisathi/internal/authctx"
	"agrisathi/model"
)

func officerActor() authctx.Actor {
	return authctx.Actor{ID: bson.NewObjectID(), Role: model.RoleOfficer}
}

// escalatedQuery seeds a store with one escalated query and returns it.
func escalatedQuery(t *testing.T, store *fakeStore, farmer *FarmerService, owner bson.ObjectID) model.Query {
	t.Helper()
	q, err := farmer.Ask(context.Background(), owner, "My tomato leaves have spots on them", "en")
	require.NoError(t, err)
	q, err = farmer.Escalate(context.Background(), owner, q.ID, "unclear answer", "")
	require.NoError(t, err)
	return q
}

func TestOfficerEscalationFlow(t *testing.T) {
	store := newFakeStore()
	farmer := NewFarmerService(store, &fakeAdvisor{answer: "advice"}, 100, zap.NewNop())
	officerSvc := NewOfficerService(store, zap.NewNop())
	owner := bson.NewObjectID()
	actor := officerActor()

	q := escalatedQuery(t, store, farmer, owner)

	pending, err := officerSvc.ListPending(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, q.ID, pending[0].ID)

	// First response: still reviewing.
	got, err := officerSvc.Respond(context.Background(), actor, q.ID, "Checking with the lab", "", false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, got.Status)
	assert.False(t, got.Resolved)

	// Second response closes it.
	got, err = officerSvc.Respond(context.Background(), actor, q.ID, "Confirmed early blight, spray mancozeb", "field visit done", true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolvedByOfficer, got.Status)
	assert.Equal(t, model.ResolverOfficer, got.ResolvedBy)
	require.NotNil(t, got.ResolvedAt)

	pending, err = officerSvc.ListPending(context.Background(), actor)
	require.NoError(t, err)
	assert.Empty(t, pending)

	handled, err := officerSvc.ListHandled(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, handled, 1)
	assert.Equal(t, q.ID, handled[0].ID)

	// A third response hits a closed query.
	_, err = officerSvc.Respond(context.Background(), actor, q.ID, "one more thing", "", false)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestOfficerOpsRejectNonOfficers(t *testing.T) {
	store := newFakeStore()
	officerSvc := NewOfficerService(store, zap.NewNop())
	farmerActor := authctx.Actor{ID: bson.NewObjectID(), Role: model.RoleFarmer}

	_, err := officerSvc.ListPending(context.Background(), farmerActor)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = officerSvc.Respond(context.Background(), farmerActor, bson.NewObjectID(), "hi", "", false)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = officerSvc.ForceResolve(context.Background(), farmerActor, bson.NewObjectID(), "")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestOfficerRespondUnknownQuery(t *testing.T) {
	officerSvc := NewOfficerService(newFakeStore(), zap.NewNop())

	_, err := officerSvc.Respond(context.Background(), officerActor(), bson.NewObjectID(), "hello", "", false)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestForceResolveClosesWithoutReply(t *testing.T) {
	store := newFakeStore()
	farmer := NewFarmerService(store, &fakeAdvisor{answer: "advice"}, 100, zap.NewNop())
	officerSvc := NewOfficerService(store, zap.NewNop())
	owner := bson.NewObjectID()
	actor := officerActor()

	q := escalatedQuery(t, store, farmer, owner)

	got, err := officerSvc.ForceResolve(context.Background(), actor, q.ID, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolvedByOfficer, got.Status)
	assert.Empty(t, got.OfficerResponse)
	assert.Equal(t, "duplicate", got.EscalationNotes)
}

func TestFarmerResolveWinsOverReview(t *testing.T) {
	store := newFakeStore()
	farmer := NewFarmerService(store, &fakeAdvisor{answer: "advice"}, 100, zap.NewNop())
	officerSvc := NewOfficerService(store, zap.NewNop())
	owner := bson.NewObjectID()
	actor := officerActor()

	q := escalatedQuery(t, store, farmer, owner)
	_, err := officerSvc.Respond(context.Background(), actor, q.ID, "Checking", "", false)
	require.NoError(t, err)

	rating := 5
	got, err := farmer.MarkResolved(context.Background(), owner, q.ID, &rating)
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, got.Status)
	assert.Equal(t, model.ResolverFarmer, got.ResolvedBy)
	assert.Equal(t, "Checking", got.OfficerResponse, "officer text survives a farmer close")

	handled, err := officerSvc.ListHandled(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, handled, 1, "farmer-closed escalations count as handled")
}

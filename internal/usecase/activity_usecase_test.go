package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivity_ListMine_ScopesToSeller(t *testing.T) {
	audit := new(auditRepoMock)
	uc := NewActivityUsecase(audit)
	sess := session.NewManager(0).Start("seller-1", model.RoleSeller)

	audit.On("List", mock.Anything, repo.AuditLogFilter{
		ActorUserID:  "seller-1",
		ResourceType: model.AuditResourceOrder,
		Limit:        10,
	}).Return([]model.AuditLog{
		{ID: 2, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: "o1",
			BeforeJSON: `{"status":"pending"}`, AfterJSON: `{"status":"shipped"}`, CreatedAt: testNow},
		{ID: 1, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: "o0",
			AfterJSON: "not json", CreatedAt: testNow},
	}, nil)

	out, err := uc.ListMine(context.Background(), sess, ActivityQuery{ResourceType: "order", Limit: 10})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.JSONEq(t, `{"status":"pending"}`, string(out[0].Before))
	assert.JSONEq(t, `{"status":"shipped"}`, string(out[0].After))
	assert.Nil(t, out[1].Before)
	assert.Nil(t, out[1].After)
	audit.AssertExpectations(t)
}

func TestActivity_ListMine_Errors(t *testing.T) {
	ctx := context.Background()
	seller := session.NewManager(0).Start("seller-1", model.RoleSeller)
	buyer := session.NewManager(0).Start("buyer-1", model.RoleBuyer)

	cases := []struct {
		name   string
		sess   *session.Session
		q      ActivityQuery
		status int
	}{
		{"anonymous", nil, ActivityQuery{}, http.StatusUnauthorized},
		{"buyer", buyer, ActivityQuery{}, http.StatusForbidden},
		{"unknown action", seller, ActivityQuery{Action: "DROP"}, http.StatusBadRequest},
		{"unknown resource", seller, ActivityQuery{ResourceType: "user"}, http.StatusBadRequest},
		{"negative offset", seller, ActivityQuery{Offset: -1}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewActivityUsecase(new(auditRepoMock)).ListMine(ctx, tc.sess, tc.q)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, he.Status)
		})
	}

	audit := new(auditRepoMock)
	audit.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	_, err := NewActivityUsecase(audit).ListMine(ctx, seller, ActivityQuery{})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.True(t, he.Retryable())
}

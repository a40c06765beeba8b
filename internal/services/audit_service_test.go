package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/repository/mocks"
)

func TestAuditRecordRedactsSecrets(t *testing.T) {
	logs := &mocks.AuditLogRepository{}
	var saved *models.AuditLog
	logs.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.AuditLog) }).
		Return(nil)

	original := models.JSONB{"email": "a@b.so", "password": "hunter22", "token": "abc"}
	NewAuditService(logs).Record(context.Background(), &models.AuditLog{
		Action:       "POST /api/auth/reset-password",
		ResourceType: "auth",
		NewValues:    original,
	})

	require.NotNil(t, saved)
	assert.Equal(t, "a@b.so", saved.NewValues["email"])
	assert.Equal(t, "[REDACTED]", saved.NewValues["password"])
	assert.Equal(t, "[REDACTED]", saved.NewValues["token"])
	assert.Equal(t, "hunter22", original["password"], "caller's map is not mutated")
}

func TestAuditRecordSwallowsErrors(t *testing.T) {
	logs := &mocks.AuditLogRepository{}
	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		NewAuditService(logs).Record(context.Background(), &models.AuditLog{Action: "DELETE /api/licenses/:id"})
	})
	logs.AssertExpectations(t)
}

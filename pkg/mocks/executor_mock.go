// Package mocks provides testify mock implementations of the protocol
// interfaces for use in unit tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockActionExecutor is a mock implementation of protocol.ActionExecutor.
type MockActionExecutor struct {
	mock.Mock
}

func (m *MockActionExecutor) AddTag(ctx context.Context, contactID, tagID string) error {
	args := m.Called(ctx, contactID, tagID)

	return args.Error(0)
}

func (m *MockActionExecutor) LaunchWorkflow(ctx context.Context, workflowID, contactID string) error {
	args := m.Called(ctx, workflowID, contactID)

	return args.Error(0)
}

func (m *MockActionExecutor) UpdateContact(ctx context.Context, contactID string, fields map[string]any) error {
	args := m.Called(ctx, contactID, fields)

	return args.Error(0)
}

func (m *MockActionExecutor) MovePipelineStage(ctx context.Context, opportunityID, stageID string) error {
	args := m.Called(ctx, opportunityID, stageID)

	return args.Error(0)
}

func (m *MockActionExecutor) MarkNoShow(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)

	return args.Error(0)
}

func (m *MockActionExecutor) SendFollowUp(ctx context.Context, contactID, message string) error {
	args := m.Called(ctx, contactID, message)

	return args.Error(0)
}

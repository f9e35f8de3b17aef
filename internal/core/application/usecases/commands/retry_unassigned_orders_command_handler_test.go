package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAdminEmail = "ops@example.com"

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockEmailDirectory struct{ mock.Mock }

func (m *MockEmailDirectory) FindEmail(ctx context.Context, userID kernel.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockRetryUoW struct{ mock.Mock }

func (m *MockRetryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRetryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRetryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRetryUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockRetryUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockRetryUoWFactory struct{ mock.Mock }

func (m *MockRetryUoWFactory) Create() commands.RetryUoW {
	args := m.Called()
	return args.Get(0).(commands.RetryUoW)
}

// readyHomeDeliveryOrder builds a ReadyForPickup home-delivery order with no
// search metadata, the shape the retry loop sweeps.
func readyHomeDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-2002", kernel.NewUUID(), kernel.NewUUID(),
		order.HomeDelivery, order.ReadyForPickup,
		nil, 0, false,
	)
	require.NoError(t, err)
	return o
}

func retryTickMocks(ctx context.Context, orders []*order.Order) (
	*MockSearchOrderRepository, *MockAssignmentRepository, *MockRetryUoW, *MockRetryUoWFactory,
) {
	orderRepo := new(MockSearchOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockRetryUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo).Once()
	orderRepo.On("GetAllReadyForHomeDelivery", ctx).Return(orders, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRetryUoWFactory)
	factory.On("Create").Return(uow).Once()

	return orderRepo, assignmentRepo, uow, factory
}

func TestRetryUnassignedOrdersCommandHandler_Handle_AssignsUnassignedOrder(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryUnassignedOrdersCommand()

	testOrder := readyHomeDeliveryOrder(t)
	_, assignmentRepo, uow, factory := retryTickMocks(ctx, []*order.Order{testOrder})

	assignmentRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*assignment.Assignment{}, nil).Once()

	assigner := new(MockAssignmentService)
	assigner.On("AutoAssign", ctx, testOrder.ID(), (*kernel.UUID)(nil)).
		Return(testAssignment(t, testOrder.ID()), nil).Once()

	tracker := services.NewRetryTracker()
	notifier := new(MockNotifier)

	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, tracker, assigner, notifier, new(MockEmailDirectory),
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, tracker.Len(), "tracking state must be cleared on success")
	notifier.AssertNotCalled(t, "SendEmail")
	assigner.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRetryUnassignedOrdersCommandHandler_Handle_SkipsOrderOnSuccessTrack(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryUnassignedOrdersCommand()

	testOrder := readyHomeDeliveryOrder(t)
	accepted, err := assignment.RestoreAssignment(
		kernel.NewUUID(), testOrder.ID(), kernel.NewUUID(),
		assignment.Accepted, time.Now().UTC(),
	)
	require.NoError(t, err)

	_, assignmentRepo, _, factory := retryTickMocks(ctx, []*order.Order{testOrder})
	assignmentRepo.On("GetByOrder", ctx, testOrder.ID()).
		Return([]*assignment.Assignment{accepted}, nil).Once()

	assigner := new(MockAssignmentService)
	tracker := services.NewRetryTracker()

	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, tracker, assigner, new(MockNotifier), new(MockEmailDirectory),
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, tracker.Len())
	assigner.AssertNotCalled(t, "AutoAssign")
}

func TestRetryUnassignedOrdersCommandHandler_Handle_WarningAlertAtMaxAttempts(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryUnassignedOrdersCommand()

	testOrder := readyHomeDeliveryOrder(t)
	_, assignmentRepo, _, factory := retryTickMocks(ctx, []*order.Order{testOrder})
	assignmentRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*assignment.Assignment{}, nil).Once()

	assigner := new(MockAssignmentService)
	assigner.On("AutoAssign", ctx, testOrder.ID(), (*kernel.UUID)(nil)).
		Return(nil, ports.ErrAssignmentFailed).Once()

	// Two failures already recorded, this tick records the third.
	now := time.Now().UTC()
	tracker := services.NewRetryTracker()
	tracker.Observe(testOrder.ID(), now)
	tracker.RecordFailure(testOrder.ID(), now)
	tracker.RecordFailure(testOrder.ID(), now)

	notifier := new(MockNotifier)
	emails := new(MockEmailDirectory)
	mock.InOrder(
		notifier.On("SendEmail", ctx, testAdminEmail, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return(nil).Once(),
		emails.On("FindEmail", ctx, testOrder.ShopOwnerID()).Return("owner@example.com", nil).Once(),
		notifier.On("SendEmail", ctx, "owner@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return(nil).Once(),
	)

	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, tracker, assigner, notifier, emails,
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// The loop keeps trying after the warning: state stays tracked.
	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, 3, tracker.Status(testOrder.ID(), now).Attempts)
	notifier.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestRetryUnassignedOrdersCommandHandler_Handle_CriticalAlertAtMaxAge(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryUnassignedOrdersCommand()

	testOrder := readyHomeDeliveryOrder(t)
	_, assignmentRepo, _, factory := retryTickMocks(ctx, []*order.Order{testOrder})
	assignmentRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*assignment.Assignment{}, nil).Once()

	// First seen 11 minutes ago, past the 10 minute give-up age.
	tracker := services.NewRetryTracker()
	tracker.Observe(testOrder.ID(), time.Now().UTC().Add(-11*time.Minute))

	assigner := new(MockAssignmentService)
	notifier := new(MockNotifier)
	emails := new(MockEmailDirectory)
	notifier.On("SendEmail", ctx, testAdminEmail, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()
	emails.On("FindEmail", ctx, testOrder.ShopOwnerID()).Return("owner@example.com", nil).Once()
	notifier.On("SendEmail", ctx, "owner@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()

	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, tracker, assigner, notifier, emails,
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, tracker.Len(), "give-up must clear tracking state")
	assigner.AssertNotCalled(t, "AutoAssign")
	notifier.AssertExpectations(t)
}

func TestRetryUnassignedOrdersCommandHandler_Handle_AssignedAfterRetryNotice(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRetryUnassignedOrdersCommand()

	testOrder := readyHomeDeliveryOrder(t)
	_, assignmentRepo, _, factory := retryTickMocks(ctx, []*order.Order{testOrder})
	assignmentRepo.On("GetByOrder", ctx, testOrder.ID()).Return([]*assignment.Assignment{}, nil).Once()

	now := time.Now().UTC()
	tracker := services.NewRetryTracker()
	tracker.Observe(testOrder.ID(), now)
	tracker.RecordFailure(testOrder.ID(), now)

	assigner := new(MockAssignmentService)
	assigner.On("AutoAssign", ctx, testOrder.ID(), (*kernel.UUID)(nil)).
		Return(testAssignment(t, testOrder.ID()), nil).Once()

	notifier := new(MockNotifier)
	notifier.On("SendEmail", ctx, testAdminEmail, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()

	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, tracker, assigner, notifier, new(MockEmailDirectory),
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, tracker.Len())
	notifier.AssertExpectations(t)
}

func TestRetryUnassignedOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RetryUnassignedOrdersCommand{} // not constructed properly

	factory := new(MockRetryUoWFactory)
	handler := commands.NewRetryUnassignedOrdersCommandHandler(
		factory, services.NewRetryTracker(), new(MockAssignmentService),
		new(MockNotifier), new(MockEmailDirectory),
		testAdminEmail, commands.DefaultRetryPolicy(), testLogger(),
	)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRetryUnassignedOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

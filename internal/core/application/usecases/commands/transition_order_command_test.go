package commands_test

import (
	"testing"

	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/domain/model/kernel"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	tenantID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, tenantID, actorID, order.Picked, "driver at door", nil)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, order.Picked, cmd.NextStatus())
	assert.Equal(t, "driver at door", cmd.Notes())
	assert.NoError(t, cmd.Validate())
}

func TestNewTransitionOrderCommand_RequiresIDs(t *testing.T) {
	valid := kernel.NewUUID()

	_, err := commands.NewTransitionOrderCommand(kernel.UUID{}, valid, valid, order.Picked, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewTransitionOrderCommand(valid, kernel.UUID{}, valid, order.Picked, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewTransitionOrderCommand(valid, valid, kernel.UUID{}, order.Picked, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewTransitionOrderCommand_BranchAssignmentRequiresBranch(t *testing.T) {
	valid := kernel.NewUUID()

	_, err := commands.NewTransitionOrderCommand(valid, valid, valid, order.AssignedToBranch, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	branchID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(valid, valid, valid, order.AssignedToBranch, "", &branchID)
	require.NoError(t, err)
	require.NotNil(t, cmd.BranchID())
	assert.Equal(t, branchID, *cmd.BranchID())
}

func TestNewTransitionOrderCommand_RequiresValidStatus(t *testing.T) {
	valid := kernel.NewUUID()

	_, err := commands.NewTransitionOrderCommand(valid, valid, valid, order.Unknown, "", nil)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitionOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.TransitionOrderCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
}

package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStoreError_PermissionDenied(t *testing.T) {
	driverErr := &mysql.MySQLError{Number: 1142, Message: "SELECT command denied"}

	got := ClassifyStoreError(driverErr)

	var su *SetupError
	require.True(t, errors.As(got, &su))
	assert.Contains(t, su.Remediation, "permission denied")
	assert.Contains(t, su.Remediation, "GRANT")
	assert.ErrorIs(t, got, driverErr)
}

func TestClassifyStoreError_MissingTable(t *testing.T) {
	driverErr := &mysql.MySQLError{Number: 1146, Message: "Table 'eventos.events' doesn't exist"}

	got := ClassifyStoreError(fmt.Errorf("list events: %w", driverErr))

	var su *SetupError
	require.True(t, errors.As(got, &su))
	assert.Contains(t, su.Remediation, "eventosctl migrate")
	assert.Contains(t, su.Error(), "doesn't exist")
}

func TestClassifyStoreError_Passthrough(t *testing.T) {
	assert.NoError(t, ClassifyStoreError(nil))

	plain := errors.New("connection refused")
	assert.Same(t, plain, ClassifyStoreError(plain))

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.Equal(t, error(dup), ClassifyStoreError(dup))
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1146}))
	assert.False(t, IsDuplicateEntry(errors.New("other")))
}

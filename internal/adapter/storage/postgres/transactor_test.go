package postgres

import (
	"context"
	"testing"
	"time"

	"point-anchor/internal/core/ports"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_Begin_ElevatedSession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tr := NewTransactor(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_config\('app.rls_bypass'`).
		WithArgs("on").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(`SELECT set_config\('app.actor_id'`).
		WithArgs("system").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(`SET LOCAL statement_timeout = 120000`).
		WillReturnResult(pgxmock.NewResult("SET", 0))

	tx, err := tr.Begin(context.Background(), ports.SessionOptions{
		Bypass:           true,
		Actor:            "system",
		StatementTimeout: 120 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_Begin_NormalSessionDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tr := NewTransactor(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_config\('app.rls_bypass'`).
		WithArgs("off").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(`SELECT set_config\('app.actor_id'`).
		WithArgs("anonymous").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	// No statement timeout statement when the option is zero.

	tx, err := tr.Begin(context.Background(), ports.SessionOptions{})
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_Begin_SetConfigFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tr := NewTransactor(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_config\('app.rls_bypass'`).
		WithArgs("on").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = tr.Begin(context.Background(), ports.SessionOptions{Bypass: true, Actor: "system"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

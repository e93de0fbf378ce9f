package counter_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go-payslip/internal/shared/counter"
	counterMock "go-payslip/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_GetNextValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO company_counters")).
		WithArgs("c1", "salary_slip_number").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(12)))

	next, err := counter.NewRepository(gormDB).GetNextValue(context.Background(), "c1", "salary_slip_number")

	assert.NoError(t, err)
	assert.Equal(t, int64(12), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextCode(t *testing.T) {
	ctx := context.Background()

	t.Run("formats the value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := counterMock.NewMockRepository(ctrl)
		repo.EXPECT().GetNextValue(ctx, "c1", "salary_slip_number").Return(int64(42), nil)

		code, err := counter.NextCode(ctx, repo, "c1", "salary_slip_number", "SLIP-%06d")

		assert.NoError(t, err)
		assert.Equal(t, "SLIP-000042", code)
	})

	t.Run("propagates failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := counterMock.NewMockRepository(ctrl)
		repo.EXPECT().GetNextValue(ctx, "c1", "salary_slip_number").Return(int64(0), errors.New("db down"))

		_, err := counter.NextCode(ctx, repo, "c1", "salary_slip_number", "SLIP-%06d")

		assert.Error(t, err)
	})
}

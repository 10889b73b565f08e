package database

import (
	"context"
	"io"
	"testing"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSeedDoctors_EmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryDoctorRepository()

	n, err := SeedDoctors(ctx, repo, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	doctors, err := repo.FindAll(ctx, entity.ActiveOnly())
	require.NoError(t, err)
	require.Len(t, doctors, 6)
	assert.Equal(t, "sarah-mitchell", doctors[0].Slug)
	assert.Equal(t, "david-krishnan", doctors[5].Slug)
}

func TestSeedDoctors_LeavesExistingDirectoryAlone(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryDoctorRepository(entity.Doctor{Slug: "hidden", Name: "Dr Hidden"})

	n, err := SeedDoctors(ctx, repo, quietLogger())
	require.NoError(t, err)
	assert.Zero(t, n)

	doctors, err := repo.FindAll(ctx, entity.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}

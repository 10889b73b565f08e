package usecase

import (
	"context"
	"errors"
	"testing"

	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRequired(form *DoctorForm) {
	form.Name = "Dr Jane Doe"
	form.Title = "Consultant Haematologist"
	form.Role = "Consultant Haematologist"
	form.Snippet = "Specialist in benign haematology."
	form.Slug = "jane-doe"
}

func TestNewForm_Defaults(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()

	assert.Equal(t, FormModeCreate, form.Mode())
	assert.Nil(t, form.ID())
	assert.True(t, form.IsActive)
	assert.Zero(t, form.DisplayOrder)

	interests, err := form.Entries(FieldInterests)
	require.NoError(t, err)
	assert.Empty(t, interests)

	bio, err := form.Entries(FieldBio)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, bio)

	quals, err := form.Entries(FieldQualifications)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, quals)
}

func TestDoctorForm_EntryOperations(t *testing.T) {
	form := newFixture().forms.NewForm()

	require.NoError(t, form.AddEntry(FieldInterests))
	require.NoError(t, form.SetEntry(FieldInterests, 0, "Lymphoma"))
	require.NoError(t, form.AddEntry(FieldInterests))
	require.NoError(t, form.SetEntry(FieldInterests, 1, "Myeloma"))
	require.NoError(t, form.AddEntry(FieldInterests))

	entries, _ := form.Entries(FieldInterests)
	assert.Equal(t, []string{"Lymphoma", "Myeloma", ""}, entries)

	require.NoError(t, form.RemoveEntry(FieldInterests, 1))
	entries, _ = form.Entries(FieldInterests)
	assert.Equal(t, []string{"Lymphoma", ""}, entries)

	assert.ErrorIs(t, form.SetEntry(FieldInterests, 5, "x"), ErrEntryIndex)
	assert.ErrorIs(t, form.RemoveEntry(FieldInterests, -1), ErrEntryIndex)
	assert.ErrorIs(t, form.AddEntry(ListField("hobbies")), ErrUnknownListField)

	entries[0] = "mutated copy"
	fresh, _ := form.Entries(FieldInterests)
	assert.Equal(t, "Lymphoma", fresh[0])
}

func TestDoctorForm_SubmitPersistsOnlyRemainingEntries(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()
	fillRequired(form)

	require.NoError(t, form.AddEntry(FieldInterests))
	require.NoError(t, form.SetEntry(FieldInterests, 0, "A"))
	require.NoError(t, form.AddEntry(FieldInterests))
	require.NoError(t, form.SetEntry(FieldInterests, 1, "B"))
	require.NoError(t, form.RemoveEntry(FieldInterests, 0))

	result, err := form.Submit(context.Background(), entity.Actor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, []string(result.Doctor.Interests))
	assert.Empty(t, result.Doctor.Bio, "blank default paragraph is dropped")
	assert.Empty(t, result.Doctor.Qualifications)
	assert.True(t, result.Created)
	assert.Equal(t, AdminDoctorsPath, result.Redirect)
	assert.Equal(t, 1, f.repo.count("Create"))

	stored, err := f.repo.DoctorRepository.FindBySlug(context.Background(), "jane-doe", entity.DoctorFilter{})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"B"}, []string(stored.Interests))
}

func TestDoctorForm_SubmitTrimsEntriesButKeepsFormState(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()
	fillRequired(form)
	require.NoError(t, form.SetEntry(FieldBio, 0, "  First paragraph.  "))
	require.NoError(t, form.AddEntry(FieldBio))
	require.NoError(t, form.AddEntry(FieldBio))
	require.NoError(t, form.SetEntry(FieldBio, 2, "   "))

	result, err := form.Submit(context.Background(), entity.Actor{})
	require.NoError(t, err)
	assert.Equal(t, []string{"First paragraph."}, []string(result.Doctor.Bio))

	bio, _ := form.Entries(FieldBio)
	assert.Len(t, bio, 3)
}

func TestDoctorForm_ValidationFailureMakesNoStoreCall(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()
	fillRequired(form)
	form.Name = "   "
	form.Slug = "Not A Slug"
	form.Snippet = ""

	result, err := form.Submit(context.Background(), entity.Actor{})
	assert.Nil(t, result)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.Contains(t, validationErr.Fields, "slug")
	assert.Contains(t, validationErr.Fields, "snippet")
	assert.NotContains(t, validationErr.Fields, "title")

	assert.Zero(t, f.repo.mutations())
}

func TestDoctorForm_RejectsSlugThatShadowsSearchRoute(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()
	fillRequired(form)
	form.Slug = "search"

	_, err := form.Submit(context.Background(), entity.Actor{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, `slug "search" is reserved`, validationErr.Fields["slug"])
	assert.Zero(t, f.repo.mutations())
}

func TestDoctorForm_StoreFailureLeavesFormForRetry(t *testing.T) {
	f := newFixture()
	form := f.forms.NewForm()
	fillRequired(form)
	require.NoError(t, form.AddEntry(FieldInterests))
	require.NoError(t, form.SetEntry(FieldInterests, 0, "Anaemia"))

	f.repo.fail("Create", errors.New("connection refused"))
	before := form.State()

	_, err := form.Submit(context.Background(), entity.Actor{})

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "connection refused", storeErr.Message())
	assert.Equal(t, before, form.State())
	assert.Zero(t, f.cache.invalidations())

	f.repo.fail("Create", nil)
	result, err := form.Submit(context.Background(), entity.Actor{})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", result.Doctor.Slug)
	assert.Equal(t, 2, f.repo.count("Create"))
}

func TestDoctorForm_SlugConflictIsAStoreError(t *testing.T) {
	f := newFixture(doctor("jane-doe", 0, true))
	form := f.forms.NewForm()
	fillRequired(form)

	_, err := form.Submit(context.Background(), entity.Actor{})

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, domainRepo.ErrSlugExists)
}

func TestEditForm_PrePopulatesAndUpdates(t *testing.T) {
	existing := doctor("james-chen", 2, false, "Myeloma", "Stem Cell Disorders")
	f := newFixture(existing)

	form, err := f.forms.EditForm(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, FormModeEdit, form.Mode())
	assert.Equal(t, existing.ID, *form.ID())
	assert.Equal(t, existing.Name, form.Name)
	assert.False(t, form.IsActive)
	assert.Equal(t, 2, form.DisplayOrder)

	interests, _ := form.Entries(FieldInterests)
	assert.Equal(t, []string{"Myeloma", "Stem Cell Disorders"}, interests)
	bio, _ := form.Entries(FieldBio)
	assert.Equal(t, []string{"Paragraph one.", "Paragraph two."}, bio)

	form.Title = "Senior Consultant Haematologist"
	result, err := form.Submit(context.Background(), entity.Actor{Email: "admin@wmhn.com.au"})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, existing.ID, result.Doctor.ID)
	assert.Equal(t, "Senior Consultant Haematologist", result.Doctor.Title)
	assert.Equal(t, 1, f.repo.count("Update"))
	assert.Zero(t, f.repo.count("Create"))
	assert.Equal(t, 1, f.cache.invalidations())

	logs, err := f.auditRepo.FindAll(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionDoctorUpdate, logs[0].Action)
	assert.Equal(t, "admin@wmhn.com.au", logs[0].AdminEmail)
}

func TestEditForm_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.forms.EditForm(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestEditForm_SubmitAfterConcurrentDelete(t *testing.T) {
	existing := doctor("gone", 0, true)
	f := newFixture(existing)

	form, err := f.forms.EditForm(context.Background(), existing.ID)
	require.NoError(t, err)

	_, err = f.repo.DoctorRepository.Delete(context.Background(), existing.ID)
	require.NoError(t, err)

	_, err = form.Submit(context.Background(), entity.Actor{})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDoctorForm_ApplyKeepsUnsetValues(t *testing.T) {
	existing := doctor("hidden", 0, false, "Lymphoma")
	f := newFixture(existing)

	form, err := f.forms.EditForm(context.Background(), existing.ID)
	require.NoError(t, err)

	form.Apply(&dto.DoctorFormRequest{
		Name:    "Dr Renamed",
		Title:   existing.Title,
		Role:    existing.Role,
		Snippet: existing.Snippet,
		Slug:    existing.Slug,
	})

	assert.Equal(t, "Dr Renamed", form.Name)
	assert.False(t, form.IsActive)
	interests, _ := form.Entries(FieldInterests)
	assert.Equal(t, []string{"Lymphoma"}, interests)
}

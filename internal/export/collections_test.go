package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/export"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
	"github.com/yasinhessnawi1/migrationpack/internal/serializer"
)

// fakeStore serves fixed entity lists and fails when err is set.
type fakeStore struct {
	users        []*models.User
	userGroups   []*models.UserGroup
	members      []*models.Member
	memberGroups []*models.MemberGroup
	memberTypes  []*models.MemberType
	dataTypes    []*models.DataType
	err          error
}

func (f *fakeStore) GetAllUsers(context.Context) ([]*models.User, error) { return f.users, f.err }
func (f *fakeStore) GetAllUserGroups(context.Context) ([]*models.UserGroup, error) {
	return f.userGroups, f.err
}
func (f *fakeStore) GetAllMembers(context.Context) ([]*models.Member, error) { return f.members, f.err }
func (f *fakeStore) GetAllMemberGroups(context.Context) ([]*models.MemberGroup, error) {
	return f.memberGroups, f.err
}
func (f *fakeStore) GetAllMemberTypes(context.Context) ([]*models.MemberType, error) {
	return f.memberTypes, f.err
}

func (f *fakeStore) GetAllDataTypes(context.Context) ([]*models.DataType, error) {
	return f.dataTypes, f.err
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExportUsers_SkipsNilEntities(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Users")
	store := &fakeStore{users: []*models.User{
		{Username: "ann", Email: "ann@example.com"},
		nil,
		{Username: "bob", Email: "bob@example.com"},
	}}

	n, err := export.ExportUsers(context.Background(), store, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"ann-example.com.config", "bob-example.com.config"}, listNames(t, dir))
}

func TestExportUsers_EmptyStoreStillCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Users")

	n, err := export.ExportUsers(context.Background(), &fakeStore{}, dir)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.DirExists(t, dir)
}

func TestExportUsers_SourceError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Users")
	store := &fakeStore{err: errors.New("connection reset")}

	_, err := export.ExportUsers(context.Background(), store, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list users")
	assert.ErrorIs(t, err, store.err)
}

func TestExportMembers_WriteErrorAborts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Members")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	// A directory squatting on the first document's name makes its write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a-example.com.config"), 0o755))

	store := &fakeStore{members: []*models.Member{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}}

	n, err := export.ExportMembers(context.Background(), store, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export members")
	assert.Zero(t, n)
	assert.NoFileExists(t, filepath.Join(dir, "b-example.com.config"), "export stops at the first failure")
}

func TestExportFamilies(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	store := &fakeStore{
		userGroups:   []*models.UserGroup{{Alias: "admin", Name: "Administrators"}},
		memberGroups: []*models.MemberGroup{{Name: "Gold"}, {Name: "Silver"}},
		memberTypes: []*models.MemberType{{
			Alias:         "member",
			PropertyTypes: []models.PropertyType{{Alias: "bio", DataTypeID: 7}},
		}},
	}

	n, err := export.ExportUserGroups(ctx, store, filepath.Join(root, "UserGroups"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"administrators.config"}, listNames(t, filepath.Join(root, "UserGroups")))

	n, err = export.ExportMemberGroups(ctx, store, filepath.Join(root, "MemberGroups"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lookup := serializer.DataTypeKeys{7: uuid.New()}
	n, err = export.ExportMemberTypes(ctx, store, lookup, filepath.Join(root, "MemberTypes"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	content, err := os.ReadFile(filepath.Join(root, "MemberTypes", "member.config"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<Definition>"+lookup[7].String()+"</Definition>")
}

func TestExportDataTypes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "DataTypes")
	store := &fakeStore{dataTypes: []*models.DataType{
		{ID: 1, Key: uuid.New(), Name: "Textstring", EditorAlias: "Umbraco.Textbox", DatabaseType: "Nvarchar"},
		nil,
		{ID: 2, Key: uuid.New(), Name: "Rich Text", EditorAlias: "Umbraco.TinyMCEv3", DatabaseType: "Ntext",
			PreValues: []models.DataTypePreValue{{Alias: "maxImageSize", Value: "500", SortOrder: 1}}},
	}}

	n, err := export.ExportDataTypes(context.Background(), store, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"textstring.config", "rich-text.config"}, listNames(t, dir))

	content, err := os.ReadFile(filepath.Join(dir, "rich-text.config"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `<PreValue Alias="maxImageSize" SortOrder="1">500</PreValue>`)
}

func TestExportDataTypes_SourceError(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	_, err := export.ExportDataTypes(context.Background(), store, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list data types")
}

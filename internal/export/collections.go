// Package export writes the entity families, assets and archive of a
// migration pack. Every function here is synchronous and fails fast: the
// first error aborts the operation and is returned wrapped.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
	"github.com/yasinhessnawi1/migrationpack/internal/serializer"
)

// UserSource enumerates every back-office user.
type UserSource interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

// UserGroupSource enumerates every user group.
type UserGroupSource interface {
	GetAllUserGroups(ctx context.Context) ([]*models.UserGroup, error)
}

// MemberSource enumerates every member.
type MemberSource interface {
	GetAllMembers(ctx context.Context) ([]*models.Member, error)
}

// MemberGroupSource enumerates every member group.
type MemberGroupSource interface {
	GetAllMemberGroups(ctx context.Context) ([]*models.MemberGroup, error)
}

// MemberTypeSource enumerates every member type with its properties and tabs.
type MemberTypeSource interface {
	GetAllMemberTypes(ctx context.Context) ([]*models.MemberType, error)
}

// DataTypeSource enumerates every data type with its pre-values.
type DataTypeSource interface {
	GetAllDataTypes(ctx context.Context) ([]*models.DataType, error)
}

// exportAll creates dir, then writes every non-nil item with write. It
// returns the number of documents written.
func exportAll[T any](family, dir string, items []*T, write func(string, *T) (string, error)) (int, error) {
	written := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		if _, err := write(dir, item); err != nil {
			return written, fmt.Errorf("failed to export %s: %w", family, err)
		}
		written++
	}

	log.Debug().
		Str("family", family).
		Str("dir", dir).
		Int("documents", written).
		Msg("Exported entity family")

	return written, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, constants.DirPermission); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return nil
}

// ExportUsers writes one document per user into dir.
func ExportUsers(ctx context.Context, src UserSource, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	users, err := src.GetAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	return exportAll("users", dir, users, serializer.WriteUser)
}

// ExportUserGroups writes one document per user group into dir.
func ExportUserGroups(ctx context.Context, src UserGroupSource, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	groups, err := src.GetAllUserGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list user groups: %w", err)
	}
	return exportAll("user groups", dir, groups, serializer.WriteUserGroup)
}

// ExportMembers writes one document per member into dir.
func ExportMembers(ctx context.Context, src MemberSource, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	members, err := src.GetAllMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list members: %w", err)
	}
	return exportAll("members", dir, members, serializer.WriteMember)
}

// ExportMemberGroups writes one document per member group into dir.
func ExportMemberGroups(ctx context.Context, src MemberGroupSource, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	groups, err := src.GetAllMemberGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list member groups: %w", err)
	}
	return exportAll("member groups", dir, groups, serializer.WriteMemberGroup)
}

// ExportMemberTypes writes one document per member type into dir, resolving
// property data types through lookup.
func ExportMemberTypes(ctx context.Context, src MemberTypeSource, lookup serializer.DataTypeLookup, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	types, err := src.GetAllMemberTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list member types: %w", err)
	}
	return exportAll("member types", dir, types, func(dir string, mt *models.MemberType) (string, error) {
		return serializer.WriteMemberType(dir, mt, lookup)
	})
}

// ExportDataTypes writes one document per data type into dir.
func ExportDataTypes(ctx context.Context, src DataTypeSource, dir string) (int, error) {
	if err := ensureDir(dir); err != nil {
		return 0, err
	}
	dataTypes, err := src.GetAllDataTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list data types: %w", err)
	}
	return exportAll("data types", dir, dataTypes, serializer.WriteDataType)
}

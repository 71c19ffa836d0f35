// Package policy implements row-level ownership enforcement for the
// applications table, independent of the repository code that composes
// queries.
//
// SQLite has no native row-security feature, so the same guarantee is
// replicated in-process: a GORM plugin registered on the one shared *gorm.DB
// handle injects an owner predicate into every statement that touches an
// owner-scoped table. Repositories still filter by owner explicitly for
// clarity, but that filtering is a convenience, not the boundary: even a
// repository that forgot (or supplied a hostile filter) cannot read or write
// another user's rows once the plugin is installed.
//
// Enforcement rules, mirroring a per-table row policy:
//   - SELECT / UPDATE / DELETE: an `owner_id = <caller identity>` predicate is
//     appended to the WHERE clause, regardless of what the caller supplied.
//   - INSERT: rejected unless every inserted row's owner equals the caller
//     identity.
//   - No identity in the statement context: the statement fails closed with
//     ErrIdentityMissing.
//
// The verified identity travels exclusively through the request context via
// WithIdentity; there is no way to assert an identity to this package out of
// band. Tables whose schema has no owner_id column are untouched.
//
// The plugin covers all statements GORM builds from clauses. Raw SQL
// (db.Raw/db.Exec) bypasses clause construction and is therefore banned from
// the codebase for the applications table.
package policy

import (
	"context"
	"errors"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ownerColumn is the column the policy keys on. Any schema exposing this
// column is treated as owner-scoped.
const ownerColumn = "owner_id"

var (
	// ErrIdentityMissing is returned when an owner-scoped statement is
	// attempted without a verified identity in the context.
	ErrIdentityMissing = errors.New("policy: no verified identity in context")

	// ErrOwnerMismatch is returned when an insert carries a row whose owner
	// differs from the verified identity.
	ErrOwnerMismatch = errors.New("policy: row owner does not match caller identity")
)

// Owned is implemented by models that carry an owner identity, allowing the
// insert check to read the owner without reflection on field names.
type Owned interface {
	OwnerIdentity() string
}

// identityKey is the private context key type so that only this package can
// write or read identities from a context.
type identityKey struct{}

// WithIdentity returns a context carrying the verified caller identity. It is
// the single channel through which identity reaches the storage layer and
// must only be called with identities produced by the session gate.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the verified identity from ctx. It returns ("", false)
// when no identity is present.
func IdentityFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// OwnerPolicy is a gorm.Plugin that enforces the row-level ownership rules
// described in the package documentation.
type OwnerPolicy struct{}

// Name implements gorm.Plugin.
func (OwnerPolicy) Name() string { return "owner_policy" }

// Initialize registers the enforcement callbacks ahead of GORM's own
// query/row/update/delete/create steps, so the predicate is in place before
// any SQL is built.
func (OwnerPolicy) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("owner_policy:query", scopeToOwner); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("owner_policy:row", scopeToOwner); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("owner_policy:update", scopeToOwner); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("owner_policy:delete", scopeToOwner); err != nil {
		return err
	}
	return db.Callback().Create().Before("gorm:create").Register("owner_policy:create", checkInsertOwner)
}

// scoped reports whether the statement targets an owner-scoped table.
func scoped(db *gorm.DB) bool {
	stmt := db.Statement
	return stmt != nil && stmt.Schema != nil && stmt.Schema.LookUpField(ownerColumn) != nil
}

// scopeToOwner appends `owner_id = <identity>` to the WHERE clause of a
// select, update, or delete against an owner-scoped table. Statements without
// a verified identity fail closed.
func scopeToOwner(db *gorm.DB) {
	if !scoped(db) {
		return
	}
	id, ok := IdentityFrom(db.Statement.Context)
	if !ok {
		db.AddError(ErrIdentityMissing)
		return
	}
	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: ownerColumn},
			Value:  id,
		},
	}})
}

// checkInsertOwner vets every row of an insert into an owner-scoped table:
// each row must implement Owned and report an owner equal to the verified
// identity.
func checkInsertOwner(db *gorm.DB) {
	if !scoped(db) {
		return
	}
	id, ok := IdentityFrom(db.Statement.Context)
	if !ok {
		db.AddError(ErrIdentityMissing)
		return
	}
	for _, owner := range insertOwners(db.Statement.Dest) {
		if owner != id {
			db.AddError(ErrOwnerMismatch)
			return
		}
	}
}

// insertOwners collects the owner identities of the destination value, which
// may be a single model, a pointer to one, or a slice of either.
func insertOwners(dest any) []string {
	var out []string
	collect := func(v reflect.Value) {
		if !v.IsValid() {
			return
		}
		if v.Kind() != reflect.Pointer && v.CanAddr() {
			v = v.Addr()
		}
		if o, ok := v.Interface().(Owned); ok {
			out = append(out, o.OwnerIdentity())
		}
	}

	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return out
		}
		if v.Elem().Kind() != reflect.Slice {
			break
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			collect(v.Index(i))
		}
		return out
	}
	collect(v)
	return out
}

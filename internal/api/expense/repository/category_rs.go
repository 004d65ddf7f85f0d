package expenseRepository

import (
	"ExpenseLedger/internal/entity"
	contextPkg "ExpenseLedger/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CategoryDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"owner_user_id"`
	Name      sql.NullString `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
}

// UpsertCategory inserts the category or, when the owner already has one with
// the same name, returns the existing row untouched.
func (r *categoryRepository) UpsertCategory(c context.Context, category entity.Category) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(c)
	var row CategoryDB

	argsKV := map[string]interface{}{
		"id":            category.ID,
		"owner_user_id": category.UserID,
		"name":          category.Name,
		"created_at":    category.CreatedAt,
	}

	query, args, err := sqlx.Named(queryUpsertCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertCategory named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       category.Name,
			"error":      err.Error(),
		}).Error("UpsertCategory execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(row), nil
}

func (r *categoryRepository) ListCategoryNames(c context.Context, userID string) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)
	var names []string

	argsKV := map[string]interface{}{
		"owner_user_id": userID,
	}

	query, args, err := sqlx.Named(queryListCategoryNames, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCategoryNames named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &names, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCategoryNames execution err")
		return nil, err
	}

	if names == nil {
		names = []string{}
	}

	return names, nil
}

func (r *categoryRepository) makeCategory(row CategoryDB) entity.Category {
	return entity.Category{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Name:      row.Name.String,
		CreatedAt: row.CreatedAt,
	}
}

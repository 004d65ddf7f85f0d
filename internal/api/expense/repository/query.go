package expenseRepository

const (
	queryUpsertCategory = `
		INSERT INTO categories (
			id,
			owner_user_id,
			name,
			created_at
		) VALUES (
			:id,
			:owner_user_id,
			:name,
			:created_at
		)
		ON CONFLICT (owner_user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, owner_user_id, name, created_at
	`

	queryListCategoryNames = `
		SELECT name
		FROM categories
		WHERE owner_user_id = :owner_user_id
		ORDER BY name ASC
	`

	queryCreateExpense = `
		INSERT INTO expenses (
			id,
			owner_user_id,
			category_id,
			description,
			amount,
			expense_date,
			latitude,
			longitude,
			address,
			created_at,
			updated_at
		) VALUES (
			:id,
			:owner_user_id,
			:category_id,
			:description,
			:amount,
			:expense_date,
			:latitude,
			:longitude,
			:address,
			:created_at,
			:updated_at
		)
	`

	selectExpenseColumns = `
		SELECT
			e.id,
			e.owner_user_id,
			e.category_id,
			c.name AS category,
			e.description,
			e.amount,
			e.expense_date,
			e.latitude,
			e.longitude,
			e.address,
			e.created_at,
			e.updated_at
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
	`

	queryGetExpenseByID = selectExpenseColumns + `
		WHERE e.id = :id AND e.owner_user_id = :owner_user_id
	`

	queryListExpenses = selectExpenseColumns + `
		WHERE e.owner_user_id = :owner_user_id
			AND (CAST(:category AS TEXT) = '' OR c.name = :category)
			AND (CAST(:pattern AS TEXT) = '' OR LOWER(e.description) LIKE :pattern ESCAPE '!')
		ORDER BY e.expense_date DESC, e.id ASC
	`

	queryUpdateExpense = `
		UPDATE expenses SET
			category_id = :category_id,
			description = :description,
			amount = :amount,
			expense_date = :expense_date,
			latitude = :latitude,
			longitude = :longitude,
			address = :address,
			updated_at = :updated_at
		WHERE id = :id AND owner_user_id = :owner_user_id
	`

	queryDeleteExpense = `
		DELETE FROM expenses
		WHERE id = :id AND owner_user_id = :owner_user_id
	`
)

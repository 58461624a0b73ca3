package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	"github.com/splitmate/splitmate_backend/internal/models"
	"github.com/splitmate/splitmate_backend/internal/utils/mapping"
	"github.com/splitmate/splitmate_backend/internal/utils/pagination"
)

const expenseColumns = `expense_id, group_id, paid_by_id, amount, title, description, category, split_type,
       created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense and split data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryWithTx
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.GroupID,
		&m.PaidByID,
		&m.Amount,
		&m.Title,
		&m.Description,
		&m.Category,
		&m.SplitType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveExpense saves an expense and its splits within a DB transaction.
// Either everything is persisted or nothing is.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, splits []domain.ExpenseSplit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	modelExpense := mapping.ToModelExpense(expense)
	expenseQuery := `
        INSERT INTO expenses (expense_id, group_id, paid_by_id, amount, title, description, category, split_type, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, expenseQuery,
		modelExpense.ExpenseID,
		modelExpense.GroupID,
		modelExpense.PaidByID,
		modelExpense.Amount,
		modelExpense.Title,
		modelExpense.Description,
		modelExpense.Category,
		modelExpense.SplitType,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to insert expense "+modelExpense.ExpenseID, err)
	}

	batch := &pgx.Batch{}
	splitQuery := `
        INSERT INTO expense_splits (expense_id, user_id, amount, is_paid)
        VALUES ($1, $2, $3, $4);
    `
	for _, split := range splits {
		modelSplit := mapping.ToModelExpenseSplit(split)
		batch.Queue(splitQuery,
			modelSplit.ExpenseID,
			modelSplit.UserID,
			modelSplit.Amount,
			modelSplit.IsPaid,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil { // Close checks errors of each queued command
		return apperrors.NewAppError(500, "failed to execute split batch for expense "+modelExpense.ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	modelExpense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(*modelExpense)
	return &domainExpense, nil
}

// ListExpensesByGroup retrieves a paginated list of a group's expenses using token-based pagination.
// It returns the expenses, a token for the next page, and an error.
func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1`
	// Ordering must be stable; expense_id breaks ties between equal timestamps.
	orderByClause := `ORDER BY created_at DESC, expense_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{groupID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastExpenseID, decodeErr := pagination.DecodeExpenseToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, expense_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastExpenseID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses for group "+groupID, err)
	}
	defer rows.Close()

	modelExpenses := make([]models.Expense, 0, fetchLimit)
	for rows.Next() {
		modelExpense, err := scanExpense(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		modelExpenses = append(modelExpenses, *modelExpense)
	}
	if rows.Err() != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating expense rows", rows.Err())
	}

	// Determine the next token from the last item included in this page.
	var nextTokenVal *string
	if len(modelExpenses) > limit {
		lastExpense := modelExpenses[limit-1]
		token := pagination.EncodeExpenseToken(lastExpense.CreatedAt, lastExpense.ExpenseID)
		nextTokenVal = &token
		modelExpenses = modelExpenses[:limit]
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nextTokenVal, nil
}

// ListExpensesByGroupSince retrieves all of a group's expenses created at or after since.
// A zero since returns the full history.
func (r *PgxExpenseRepository) ListExpensesByGroupSince(ctx context.Context, groupID string, since time.Time) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1 AND created_at >= $2 ORDER BY created_at DESC, expense_id DESC;`
	rows, err := r.Pool.Query(ctx, query, groupID, since)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for group "+groupID, err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		modelExpense, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		modelExpenses = append(modelExpenses, *modelExpense)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", rows.Err())
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

// UpdateExpense updates an expense's descriptive fields only. Amount, payer and
// splits are immutable once recorded.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET title = $1, description = $2, category = $3, last_updated_at = $4, last_updated_by = $5
        WHERE expense_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelExpense.Title,
		modelExpense.Description,
		modelExpense.Category,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
		modelExpense.ExpenseID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+modelExpense.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense and its splits within a DB transaction.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM expense_splits WHERE expense_id = $1;`, expenseID); err != nil {
		return apperrors.NewAppError(500, "failed to delete splits for expense "+expenseID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindSplitsByExpenseID retrieves all splits of a single expense.
func (r *PgxExpenseRepository) FindSplitsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseSplit, error) {
	query := `
        SELECT expense_id, user_id, amount, is_paid
        FROM expense_splits
        WHERE expense_id = $1
        ORDER BY user_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits for expense "+expenseID, err)
	}
	defer rows.Close()

	return collectSplits(rows)
}

// FindSplitsByExpenseIDs retrieves splits for multiple expenses, grouped by expense ID.
func (r *PgxExpenseRepository) FindSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]domain.ExpenseSplit, error) {
	if len(expenseIDs) == 0 {
		return map[string][]domain.ExpenseSplit{}, nil
	}

	query := `
        SELECT expense_id, user_id, amount, is_paid
        FROM expense_splits
        WHERE expense_id = ANY($1)
        ORDER BY expense_id, user_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits for expenses", err)
	}
	defer rows.Close()

	splits, err := collectSplits(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.ExpenseSplit, len(expenseIDs))
	for _, s := range splits {
		grouped[s.ExpenseID] = append(grouped[s.ExpenseID], s)
	}
	return grouped, nil
}

// FindSplitsByGroupID retrieves every split belonging to a group's expenses.
func (r *PgxExpenseRepository) FindSplitsByGroupID(ctx context.Context, groupID string) ([]domain.ExpenseSplit, error) {
	query := `
        SELECT s.expense_id, s.user_id, s.amount, s.is_paid
        FROM expense_splits s
        JOIN expenses e ON s.expense_id = e.expense_id
        WHERE e.group_id = $1;
    `
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits for group "+groupID, err)
	}
	defer rows.Close()

	return collectSplits(rows)
}

func collectSplits(rows pgx.Rows) ([]domain.ExpenseSplit, error) {
	modelSplits := []models.ExpenseSplit{}
	for rows.Next() {
		var m models.ExpenseSplit
		err := rows.Scan(
			&m.ExpenseID,
			&m.UserID,
			&m.Amount,
			&m.IsPaid,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense split row", err)
		}
		modelSplits = append(modelSplits, m)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense split rows", rows.Err())
	}
	return mapping.ToDomainExpenseSplitSlice(modelSplits), nil
}

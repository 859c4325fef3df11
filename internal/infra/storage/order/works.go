package order

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/psqlbuilder"
)

// insertWorks сохраняет позиции заказа, их запчасти и назначения мастеров.
// Порядок позиций, запчастей и назначений сохраняется в колонке position.
func (r *Repository) insertWorks(ctx context.Context, executor DBExecutor, o *domain.Order) error {
	for i := range o.Works {
		w := &o.Works[i]

		query, args, err := psqlbuilder.Insert("order_works").
			Columns("order_id", "position", "work_type_id", "comment", "cost").
			Values(o.ID, i, w.WorkType.ID, w.Comment, w.Cost).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: insertWorks - build insert work query: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID); err != nil {
			return fmt.Errorf("%w: insertWorks - insert work: %v", ErrExecQuery, err)
		}

		if len(w.Parts) > 0 {
			insert := psqlbuilder.Insert("order_work_parts").Columns("work_id", "part_id", "position")
			for j, p := range w.Parts {
				insert = insert.Values(w.ID, p.ID, j)
			}
			query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
			if err != nil {
				return fmt.Errorf("%w: insertWorks - build insert parts query: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: insertWorks - insert parts: %v", ErrExecQuery, err)
			}
		}

		if len(w.Assignments) > 0 {
			insert := psqlbuilder.Insert("work_assignments").Columns("work_id", "position", "master_id", "salary_percent")
			for j, a := range w.Assignments {
				insert = insert.Values(w.ID, j, a.Master.ID, a.SalaryPercent)
			}
			query, args, err = insert.ToSql()
			if err != nil {
				return fmt.Errorf("%w: insertWorks - build insert assignments query: %v", ErrBuildQuery, err)
			}
			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: insertWorks - insert assignments: %v", ErrExecQuery, err)
			}
		}
	}

	return nil
}

// attachWorks загружает позиции для набора заказов тремя запросами
func (r *Repository) attachWorks(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	byOrder := make(map[int64]*domain.Order, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		byOrder[o.ID] = o
		orderIDs = append(orderIDs, o.ID)
	}

	// 1. Позиции с типом работ
	query, args, err := psqlbuilder.Select(
		"w.id", "w.order_id", "w.comment", "w.cost",
		"wt.id", "wt.code", "wt.name", "wt.active",
	).
		From("order_works w").
		Join("dictionary_entries wt ON wt.id = w.work_type_id").
		Where("w.order_id = ANY(?)", pq.Array(orderIDs)).
		OrderBy("w.order_id", "w.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachWorks - build works query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachWorks - query works: %v", ErrExecQuery, err)
	}

	type workRef struct {
		orderID int64
		index   int
	}
	workRefs := make(map[int64]workRef)
	workIDs := make([]int64, 0)

	for rows.Next() {
		var (
			w       domain.Work
			orderID int64
		)
		if err := rows.Scan(&w.ID, &orderID, &w.Comment, &w.Cost,
			&w.WorkType.ID, &w.WorkType.Code, &w.WorkType.Name, &w.WorkType.Active); err != nil {
			rows.Close()
			return fmt.Errorf("%w: attachWorks - scan work: %v", ErrScanRow, err)
		}
		w.Parts = make([]domain.Part, 0)
		w.Assignments = make([]domain.MasterAssignment, 0)

		o := byOrder[orderID]
		o.Works = append(o.Works, w)
		workRefs[w.ID] = workRef{orderID: orderID, index: len(o.Works) - 1}
		workIDs = append(workIDs, w.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: attachWorks - iterate works: %v", ErrScanRow, err)
	}
	rows.Close()

	if len(workIDs) == 0 {
		return nil
	}
	workByID := func(id int64) *domain.Work {
		ref := workRefs[id]
		return &byOrder[ref.orderID].Works[ref.index]
	}

	// 2. Запчасти
	query, args, err = psqlbuilder.Select("wp.work_id", "p.id", "p.type", "p.code", "p.name", "p.active").
		From("order_work_parts wp").
		Join("dictionary_entries p ON p.id = wp.part_id").
		Where("wp.work_id = ANY(?)", pq.Array(workIDs)).
		OrderBy("wp.work_id", "wp.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachWorks - build parts query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachWorks - query parts: %v", ErrExecQuery, err)
	}
	for rows.Next() {
		var (
			workID int64
			p      domain.Part
		)
		if err := rows.Scan(&workID, &p.ID, &p.WorkTypeCode, &p.Code, &p.Name, &p.Active); err != nil {
			rows.Close()
			return fmt.Errorf("%w: attachWorks - scan part: %v", ErrScanRow, err)
		}
		w := workByID(workID)
		w.Parts = append(w.Parts, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: attachWorks - iterate parts: %v", ErrScanRow, err)
	}
	rows.Close()

	// 3. Назначения мастеров
	query, args, err = psqlbuilder.Select(
		"a.work_id", "a.salary_percent",
		"u.id", "u.username", "u.first_name", "u.last_name", "u.phone",
	).
		From("work_assignments a").
		Join("users u ON u.id = a.master_id").
		Where("a.work_id = ANY(?)", pq.Array(workIDs)).
		OrderBy("a.work_id", "a.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachWorks - build assignments query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachWorks - query assignments: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workID int64
			a      domain.MasterAssignment
		)
		if err := rows.Scan(&workID, &a.SalaryPercent,
			&a.Master.ID, &a.Master.Username, &a.Master.FirstName, &a.Master.LastName, &a.Master.Phone); err != nil {
			return fmt.Errorf("%w: attachWorks - scan assignment: %v", ErrScanRow, err)
		}
		w := workByID(workID)
		w.Assignments = append(w.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachWorks - iterate assignments: %v", ErrScanRow, err)
	}

	return nil
}

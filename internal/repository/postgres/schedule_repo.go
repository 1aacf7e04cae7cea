package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"confdata/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

func (r *scheduleRepository) ListSlots(ctx context.Context) ([]*domain.Slot, error) {
	// A slot links at most one presentation; when a rescheduled one still points
	// at the slot, the live presentation wins, then the newest.
	query := fmt.Sprintf(`
		SELECT sl.id, d.date, sl.start, sl."end", COALESCE(sl.content_override, ''),
		       pr.id, pr.title, pr.description, pr.cancelled,
		       %s
		FROM slots sl
		INNER JOIN days d ON d.id = sl.day_id
		LEFT JOIN presentations pr ON pr.id = (
			SELECT p2.id FROM presentations p2
			WHERE p2.slot_id = sl.id
			ORDER BY p2.cancelled, p2.id DESC
			LIMIT 1
		)
		%s
		ORDER BY d.date, sl.start, sl.id
	`, variantSelect, fmt.Sprintf(variantJoins, "pr.proposal_id"))
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.Slot
	byID := make(map[int64]*domain.Slot)
	for rows.Next() {
		sl := &domain.Slot{}
		date, start, end := dateValue(), timeOfDayValue(), timeOfDayValue()
		var (
			presID        sql.NullInt64
			presTitle     sql.NullString
			presDesc      sql.NullString
			presCancelled sql.NullBool
			v             variantColumns
		)
		dest := []any{&sl.ID, date, start, end, &sl.ContentOverride, &presID, &presTitle, &presDesc, &presCancelled}
		dest = append(dest, v.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		sl.Date, sl.Start, sl.End = date.Time, start.Time, end.Time
		if presID.Valid {
			sl.Content = &domain.Presentation{
				ID:          presID.Int64,
				Title:       presTitle.String,
				Description: presDesc.String,
				Cancelled:   presCancelled.Bool,
				Variant:     v.resolve(),
			}
		}
		slots = append(slots, sl)
		byID[sl.ID] = sl
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	// Every slot is exported, so all room links are read in one pass.
	roomRows, err := r.DB.QueryContext(ctx, `
		SELECT sr.slot_id, rm.id, rm.name, rm."order"
		FROM slot_rooms sr
		INNER JOIN rooms rm ON rm.id = sr.room_id
		ORDER BY rm."order", rm.name
	`)
	if err != nil {
		return nil, err
	}
	defer roomRows.Close()
	for roomRows.Next() {
		var slotID int64
		var room domain.Room
		if err := roomRows.Scan(&slotID, &room.ID, &room.Name, &room.Order); err != nil {
			return nil, err
		}
		if sl, ok := byID[slotID]; ok {
			sl.Rooms = append(sl.Rooms, room)
		}
	}
	if err := roomRows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

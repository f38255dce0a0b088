package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRoundEvent(ctx context.Context, data RoundEventData) error {
	create := roundEvents.create().
		set("sequence", int64(0)).
		set("session_id", data.SessionID).
		set("role", data.Role).
		set("skills", strings.Join(data.Skills, ", ")).
		set("experience_years", data.ExperienceYears).
		set("question_count", data.QuestionCount).
		set("correct", data.Correct).
		set("wrong", data.Wrong).
		set("summary", data.Summary)
	// Validate before consuming a sequence number.
	if _, _, err := create.query(); err != nil {
		return fmt.Errorf("save round event: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args, err := create.set("sequence", seqNum).query()
	if err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRoundEvents(ctx context.Context, opts QueryOpts) ([]RoundEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(roundEvents.columns()...).
		From(entsql.Table(roundEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query round events: %w", err)
	}
	defer rows.Close()

	var records []RoundEventRecord
	for rows.Next() {
		var rec RoundEventRecord
		var skills string
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.Role, &skills, &rec.ExperienceYears,
			&rec.QuestionCount, &rec.Correct, &rec.Wrong, &rec.Summary,
		); err != nil {
			return nil, fmt.Errorf("scan round event: %w", err)
		}
		rec.Skills = splitSkills(skills)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) RoundTotals(ctx context.Context) (RoundTotals, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.As(entsql.Count("*"), "rounds"),
			entsql.As(entsql.Sum("correct"), "correct"),
			entsql.As(entsql.Sum("wrong"), "wrong"),
		).
		From(entsql.Table(roundEventsTable)).
		Query()

	var totals RoundTotals
	var correct, wrong sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&totals.Rounds, &correct, &wrong); err != nil {
		return RoundTotals{}, fmt.Errorf("query round totals: %w", err)
	}
	totals.Correct = int(correct.Int64)
	totals.Wrong = int(wrong.Int64)
	return totals, nil
}

func splitSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

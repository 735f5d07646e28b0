package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/caupolican/auge/internal/models"
)

// UpsertExercise stores or refreshes one exercise catalog entry.
func (db *DB) UpsertExercise(ctx context.Context, meta models.ExerciseMetadata) error {
	muscles, err := json.Marshal(meta.InvolvedMuscles)
	if err != nil {
		return fmt.Errorf("encoding involved muscles: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, equipment, type, body_part, involved_muscles, efc, ssc, cnc, calculated_1rm)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			equipment = EXCLUDED.equipment,
			type = EXCLUDED.type,
			body_part = EXCLUDED.body_part,
			involved_muscles = EXCLUDED.involved_muscles,
			efc = EXCLUDED.efc,
			ssc = EXCLUDED.ssc,
			cnc = EXCLUDED.cnc,
			calculated_1rm = EXCLUDED.calculated_1rm`,
		meta.ID, meta.Name, meta.Equipment, string(meta.Type), meta.BodyPart,
		muscles, meta.EFC, meta.SSC, meta.CNC, meta.Calculated1RM)
	if err != nil {
		return fmt.Errorf("upserting exercise: %w", err)
	}
	return nil
}

// AllExercises loads the whole catalog. The engine resolves per-name
// lookups in memory, so one read per recomputation is enough.
func (db *DB) AllExercises(ctx context.Context) ([]models.ExerciseMetadata, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, equipment, type, body_part, involved_muscles, efc, ssc, cnc, calculated_1rm
		 FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseMetadata
	for rows.Next() {
		var (
			m       models.ExerciseMetadata
			typ     string
			muscles []byte
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Equipment, &typ, &m.BodyPart,
			&muscles, &m.EFC, &m.SSC, &m.CNC, &m.Calculated1RM); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		m.Type = models.ExerciseType(typ)
		if len(muscles) > 0 {
			if err := json.Unmarshal(muscles, &m.InvolvedMuscles); err != nil {
				return nil, fmt.Errorf("decoding involved muscles for %s: %w", m.ID, err)
			}
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

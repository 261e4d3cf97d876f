package postgres

import (
	"context"
	"database/sql"

	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/settings"
)

// Settings y patient son registros únicos: upsert sobre una fila singleton.

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT enable_notifications, auto_save, default_reminder_minutes
		FROM app_settings
		WHERE singleton
	`)

	var s settings.Settings
	if err := row.Scan(&s.EnableNotifications, &s.AutoSave, &s.DefaultReminderMin); err != nil {
		if err == sql.ErrNoRows {
			return settings.Default(), nil
		}
		return settings.Default(), err
	}
	return s, nil
}

func (r *SettingsRepo) Put(ctx context.Context, s settings.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (singleton, enable_notifications, auto_save, default_reminder_minutes)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE SET
			enable_notifications = EXCLUDED.enable_notifications,
			auto_save = EXCLUDED.auto_save,
			default_reminder_minutes = EXCLUDED.default_reminder_minutes
	`, s.EnableNotifications, s.AutoSave, s.DefaultReminderMin)
	return err
}

type PatientRepo struct {
	db *sql.DB
}

func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Get(ctx context.Context) (patient.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, dob, contact, allergies, doctor_name, doctor_contact
		FROM patient_info
		WHERE singleton
	`)

	var p patient.Patient
	if err := row.Scan(&p.Name, &p.DOB, &p.Contact, &p.Allergies, &p.DoctorName, &p.DoctorContact); err != nil {
		if err == sql.ErrNoRows {
			return patient.Patient{}, nil
		}
		return patient.Patient{}, err
	}
	return p, nil
}

func (r *PatientRepo) Put(ctx context.Context, p patient.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patient_info (singleton, name, dob, contact, allergies, doctor_name, doctor_contact)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name,
			dob = EXCLUDED.dob,
			contact = EXCLUDED.contact,
			allergies = EXCLUDED.allergies,
			doctor_name = EXCLUDED.doctor_name,
			doctor_contact = EXCLUDED.doctor_contact
	`, p.Name, p.DOB, p.Contact, p.Allergies, p.DoctorName, p.DoctorContact)
	return err
}

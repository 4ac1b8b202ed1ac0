package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// UpdateProfileInput carries the mutable profile fields across the users,
// donor_profiles and hospital_details tables.
type UpdateProfileInput struct {
	Name                  string
	Phone                 *string
	Age                   *int
	Gender                *string
	BloodGroup            *string
	Location              *string
	Address               *string
	EmergencyContact      *string
	PreferredDonationDays *string
	PreferredDonationTime *string
	Hospital              *UpdateHospitalInput
}

// UpdateHospitalInput carries the hospital-detail portion of a profile update.
type UpdateHospitalInput struct {
	HospitalName     string
	Location         *string
	Address          *string
	ContactPerson    *string
	ContactPhone     *string
	ContactEmail     *string
	BloodBankContact *string
}

// DonorFilter narrows hospital donor searches.
type DonorFilter struct {
	BloodGroup string
	Location   string
}

// UserRepository defines persistence access for accounts of every role.
type UserRepository interface {
	CreateAccount(ctx context.Context, user *domain.User, profile *domain.DonorProfile, hospital *domain.HospitalDetail) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	GetHospitalDetail(ctx context.Context, userID int64) (*domain.HospitalDetail, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	VerifyHospital(ctx context.Context, hospitalID int64, status domain.VerificationStatus, adminID int64) error
	ListDonors(ctx context.Context, filter DonorFilter) ([]domain.DonorListing, error)
	ListUsers(ctx context.Context) ([]domain.Account, error)
	ListHospitals(ctx context.Context) ([]domain.HospitalListing, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// CreateAccount inserts the user, donor profile and (for hospitals) the
// hospital detail row in one transaction.
func (r *userRepository) CreateAccount(ctx context.Context, user *domain.User, profile *domain.DonorProfile, hospital *domain.HospitalDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
        INSERT INTO users (email, password_hash, name, phone, user_type, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertUser,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Type,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	const insertProfile = `
        INSERT INTO donor_profiles
            (user_id, age, gender, blood_group, location, address,
             emergency_contact, preferred_donation_days, preferred_donation_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := tx.Exec(ctx, insertProfile,
		user.ID,
		profile.Age,
		profile.Gender,
		profile.BloodGroup,
		profile.Location,
		profile.Address,
		profile.EmergencyContact,
		profile.PreferredDonationDays,
		profile.PreferredDonationTime,
	); err != nil {
		return err
	}

	if hospital != nil {
		const insertHospital = `
            INSERT INTO hospital_details
                (user_id, hospital_name, certification_number, license_number,
                 location, address, contact_person, contact_phone, contact_email,
                 blood_bank_contact, verification_status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		if _, err := tx.Exec(ctx, insertHospital,
			user.ID,
			hospital.HospitalName,
			hospital.CertificationNumber,
			hospital.LicenseNumber,
			hospital.Location,
			hospital.Address,
			hospital.ContactPerson,
			hospital.ContactPhone,
			hospital.ContactEmail,
			hospital.BloodBankContact,
			domain.VerificationPending,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, name, phone, user_type, status, created_at, updated_at
        FROM users WHERE email=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.Type,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, name, phone, user_type, status, created_at, updated_at
        FROM users WHERE id=$1`

	var acc domain.Account
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.Name,
		&acc.Phone,
		&acc.Type,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	profile, err := r.getProfile(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	acc.Profile = profile

	if acc.Type == domain.RoleHospital {
		hospital, err := r.GetHospitalDetail(ctx, id)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		acc.Hospital = hospital
	}

	return &acc, nil
}

func (r *userRepository) getProfile(ctx context.Context, userID int64) (*domain.DonorProfile, error) {
	const query = `
        SELECT user_id, age, gender, blood_group, location, address,
               emergency_contact, preferred_donation_days, preferred_donation_time,
               total_donations, total_credits, last_donation_date, next_eligible_date
        FROM donor_profiles WHERE user_id=$1`

	var p domain.DonorProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Age,
		&p.Gender,
		&p.BloodGroup,
		&p.Location,
		&p.Address,
		&p.EmergencyContact,
		&p.PreferredDonationDays,
		&p.PreferredDonationTime,
		&p.TotalDonations,
		&p.TotalCredits,
		&p.LastDonationDate,
		&p.NextEligibleDate,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) GetHospitalDetail(ctx context.Context, userID int64) (*domain.HospitalDetail, error) {
	const query = `
        SELECT user_id, hospital_name, certification_number, license_number,
               location, address, contact_person, contact_phone, contact_email,
               blood_bank_contact, verification_status, verification_date, verified_by
        FROM hospital_details WHERE user_id=$1`

	var h domain.HospitalDetail
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&h.UserID,
		&h.HospitalName,
		&h.CertificationNumber,
		&h.LicenseNumber,
		&h.Location,
		&h.Address,
		&h.ContactPerson,
		&h.ContactPhone,
		&h.ContactEmail,
		&h.BloodBankContact,
		&h.VerificationStatus,
		&h.VerificationDate,
		&h.VerifiedBy,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *userRepository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	const query = `SELECT password_hash FROM users WHERE id=$1`

	var hash string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&hash); err != nil {
		return "", err
	}
	return hash, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateProfile writes the users row, the donor profile and (when present)
// the hospital detail in one transaction.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateUser = `UPDATE users SET name=$1, phone=$2, updated_at=NOW() WHERE id=$3`
	if _, err := tx.Exec(ctx, updateUser, input.Name, input.Phone, id); err != nil {
		return err
	}

	const updateProfile = `
        UPDATE donor_profiles SET
            age=$1, gender=$2, blood_group=$3, location=$4, address=$5,
            emergency_contact=$6, preferred_donation_days=$7, preferred_donation_time=$8
        WHERE user_id=$9`
	if _, err := tx.Exec(ctx, updateProfile,
		input.Age,
		input.Gender,
		input.BloodGroup,
		input.Location,
		input.Address,
		input.EmergencyContact,
		input.PreferredDonationDays,
		input.PreferredDonationTime,
		id,
	); err != nil {
		return err
	}

	if input.Hospital != nil {
		const updateHospital = `
            UPDATE hospital_details SET
                hospital_name=$1, location=$2, address=$3, contact_person=$4,
                contact_phone=$5, contact_email=$6, blood_bank_contact=$7
            WHERE user_id=$8`
		if _, err := tx.Exec(ctx, updateHospital,
			input.Hospital.HospitalName,
			input.Hospital.Location,
			input.Hospital.Address,
			input.Hospital.ContactPerson,
			input.Hospital.ContactPhone,
			input.Hospital.ContactEmail,
			input.Hospital.BloodBankContact,
			id,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	const query = `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// VerifyHospital records the admin decision. verification_status is the
// canonical flag; the coarse users.status mirror is kept in the same
// transaction so the two never drift.
func (r *userRepository) VerifyHospital(ctx context.Context, hospitalID int64, status domain.VerificationStatus, adminID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateDetail = `
        UPDATE hospital_details SET
            verification_status=$1, verification_date=NOW(), verified_by=$2
        WHERE user_id=$3`
	cmd, err := tx.Exec(ctx, updateDetail, status, adminID, hospitalID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	userStatus := domain.UserStatusInactive
	if status == domain.VerificationVerified {
		userStatus = domain.UserStatusActive
	}
	const updateUser = `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`
	if _, err := tx.Exec(ctx, updateUser, userStatus, hospitalID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) ListDonors(ctx context.Context, filter DonorFilter) ([]domain.DonorListing, error) {
	query := `
        SELECT u.id, u.name, u.email, u.phone, dp.blood_group, dp.location,
               dp.last_donation_date, dp.next_eligible_date, dp.total_donations, dp.total_credits
        FROM users u
        JOIN donor_profiles dp ON u.id = dp.user_id
        WHERE u.user_type = 'user' AND u.status = 'active'`

	args := []any{}
	if filter.BloodGroup != "" {
		args = append(args, filter.BloodGroup)
		query += ` AND dp.blood_group = $` + itoa(len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += ` AND dp.location ILIKE $` + itoa(len(args))
	}
	query += ` ORDER BY dp.total_donations DESC, u.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donors := []domain.DonorListing{}
	for rows.Next() {
		var d domain.DonorListing
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Email,
			&d.Phone,
			&d.BloodGroup,
			&d.Location,
			&d.LastDonationDate,
			&d.NextEligibleDate,
			&d.TotalDonations,
			&d.TotalCredits,
		); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT u.id, u.email, u.name, u.phone, u.user_type, u.status, u.created_at, u.updated_at,
               dp.user_id, dp.age, dp.gender, dp.blood_group, dp.location, dp.address,
               dp.emergency_contact, dp.preferred_donation_days, dp.preferred_donation_time,
               dp.total_donations, dp.total_credits, dp.last_donation_date, dp.next_eligible_date
        FROM users u
        LEFT JOIN donor_profiles dp ON u.id = dp.user_id
        WHERE u.user_type = 'user'
        ORDER BY u.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		var p domain.DonorProfile
		var profileID *int64
		if err := rows.Scan(
			&acc.ID, &acc.Email, &acc.Name, &acc.Phone, &acc.Type, &acc.Status,
			&acc.CreatedAt, &acc.UpdatedAt,
			&profileID, &p.Age, &p.Gender, &p.BloodGroup, &p.Location, &p.Address,
			&p.EmergencyContact, &p.PreferredDonationDays, &p.PreferredDonationTime,
			&p.TotalDonations, &p.TotalCredits, &p.LastDonationDate, &p.NextEligibleDate,
		); err != nil {
			return nil, err
		}
		if profileID != nil {
			p.UserID = *profileID
			acc.Profile = &p
		}
		users = append(users, acc)
	}
	return users, rows.Err()
}

func (r *userRepository) ListHospitals(ctx context.Context) ([]domain.HospitalListing, error) {
	const query = `
        SELECT u.id, u.email, u.name, u.phone, u.user_type, u.status, u.created_at, u.updated_at,
               hd.user_id, hd.hospital_name, hd.certification_number, hd.license_number,
               hd.location, hd.address, hd.contact_person, hd.contact_phone, hd.contact_email,
               hd.blood_bank_contact, hd.verification_status, hd.verification_date, hd.verified_by,
               (SELECT COUNT(*) FROM donations d WHERE d.hospital_id = u.id) AS total_donations
        FROM users u
        JOIN hospital_details hd ON u.id = hd.user_id
        WHERE u.user_type = 'hospital'
        ORDER BY u.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hospitals := []domain.HospitalListing{}
	for rows.Next() {
		var h domain.HospitalListing
		if err := rows.Scan(
			&h.User.ID, &h.Email, &h.User.Name, &h.Phone, &h.Type, &h.Status,
			&h.CreatedAt, &h.UpdatedAt,
			&h.HospitalDetail.UserID, &h.HospitalName, &h.CertificationNumber, &h.LicenseNumber,
			&h.HospitalDetail.Location, &h.HospitalDetail.Address, &h.ContactPerson,
			&h.ContactPhone, &h.ContactEmail, &h.BloodBankContact,
			&h.VerificationStatus, &h.VerificationDate, &h.VerifiedBy,
			&h.TotalDonations,
		); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}

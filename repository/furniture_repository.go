package repository

import (
	"database/sql"
	"go-furniture-api/logger"
	"go-furniture-api/model"
)

// IFurnitureRepository defines the contract for catalog database operations.
type IFurnitureRepository interface {
	CreateFurniture(f *model.Furniture) error
	GetFurnitureByID(id int) (*model.Furniture, error)
	GetAllFurnitures() ([]*model.Furniture, error)
	UpdateFurniture(f *model.Furniture) error
	DeleteFurniture(id int) error
}

// FurnitureRepository implements IFurnitureRepository.
type FurnitureRepository struct {
	DB *sql.DB
}

func NewFurnitureRepository(db *sql.DB) *FurnitureRepository {
	return &FurnitureRepository{DB: db}
}

const furnitureColumns = `id, name, description, color, price, featured, stock, image_url, created_at, updated_at`

func scanFurniture(row *sql.Row) (*model.Furniture, error) {
	f := &model.Furniture{}
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.Price,
		&f.Featured, &f.Stock, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FurnitureRepository) CreateFurniture(f *model.Furniture) error {
	query := `INSERT INTO furnitures (name, description, color, price, featured, stock, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, f.Name, f.Description, f.Color, f.Price, f.Featured, f.Stock, f.ImageURL).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Log.WithField("name", f.Name).WithError(err).Error("Failed to execute create furniture query")
		return err
	}
	return nil
}

func (r *FurnitureRepository) GetFurnitureByID(id int) (*model.Furniture, error) {
	query := `SELECT ` + furnitureColumns + ` FROM furnitures WHERE id = $1`
	return scanFurniture(r.DB.QueryRow(query, id))
}

// GetAllFurnitures lists the catalog, most recently updated first.
func (r *FurnitureRepository) GetAllFurnitures() ([]*model.Furniture, error) {
	query := `SELECT ` + furnitureColumns + ` FROM furnitures ORDER BY updated_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get all furnitures query")
		return nil, err
	}
	defer rows.Close()

	furnitures := []*model.Furniture{}
	for rows.Next() {
		f := &model.Furniture{}
		err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.Price,
			&f.Featured, &f.Stock, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, err
		}
		furnitures = append(furnitures, f)
	}
	return furnitures, rows.Err()
}

func (r *FurnitureRepository) UpdateFurniture(f *model.Furniture) error {
	query := `UPDATE furnitures
	          SET name = $1, description = $2, color = $3, price = $4, featured = $5, stock = $6, image_url = $7, updated_at = now()
	          WHERE id = $8 RETURNING updated_at`
	err := r.DB.QueryRow(query, f.Name, f.Description, f.Color, f.Price, f.Featured, f.Stock, f.ImageURL, f.ID).
		Scan(&f.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *FurnitureRepository) DeleteFurniture(id int) error {
	res, err := r.DB.Exec(`DELETE FROM furnitures WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithField("furniture_id", id).WithError(err).Error("Failed to execute delete furniture query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

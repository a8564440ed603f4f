package handler

import (
	"database/sql"
	"errors"
	"go-furniture-api/common"
	"go-furniture-api/logger"
	"go-furniture-api/model"
	"go-furniture-api/repository"
	"go-furniture-api/service"
	"net/http"
	"strconv"
)

// FurnitureHandler exposes the catalog endpoints. Reads are public,
// writes require an admin access token.
type FurnitureHandler struct {
	service *service.FurnitureService
}

func NewFurnitureHandler(service *service.FurnitureService) *FurnitureHandler {
	return &FurnitureHandler{service: service}
}

func parseFurnitureID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, common.CodeBadRequest, "Invalid furniture id", nil)
	}
	return id, nil
}

// ListFurnitures godoc
// @Summary      List the catalog
// @Tags         furnitures
// @Produce      json
// @Success      200 {array} model.Furniture
// @Router       /api/v1/furnitures [get]
func (h *FurnitureHandler) ListFurnitures(w http.ResponseWriter, r *http.Request) *common.AppError {
	furnitures, err := h.service.ListFurnitures()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not retrieve furnitures", err)
	}

	writeJSON(w, http.StatusOK, furnitures)
	return nil
}

// GetFurniture godoc
// @Summary      Get a catalog item
// @Tags         furnitures
// @Produce      json
// @Param        id path int true "Furniture id"
// @Success      200 {object} model.Furniture
// @Failure      404 {object} common.AppError
// @Router       /api/v1/furnitures/{id} [get]
func (h *FurnitureHandler) GetFurniture(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := parseFurnitureID(r)
	if appErr != nil {
		return appErr
	}

	furniture, err := h.service.GetFurniture(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, common.CodeNotFound, "Furniture with the specified ID was not found.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not retrieve furniture", err)
	}

	writeJSON(w, http.StatusOK, furniture)
	return nil
}

// CreateFurniture godoc
// @Summary      Add a catalog item
// @Tags         furnitures
// @Accept       json
// @Produce      json
// @Param        request body model.CreateFurnitureRequest true "New furniture"
// @Success      201 {object} model.Furniture
// @Failure      403 {object} common.AppError
// @Failure      409 {object} common.AppError
// @Failure      422 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/furnitures [post]
func (h *FurnitureHandler) CreateFurniture(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateFurnitureRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	furniture := &model.Furniture{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Price:       req.Price,
		Featured:    req.Featured,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}

	if err := h.service.CreateFurniture(furniture); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return common.NewAppError(http.StatusConflict, common.CodeConflict, "A furniture with this name already exists.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not create furniture", err)
	}

	logger.Log.WithField("furniture_id", furniture.ID).Info("Furniture created")
	writeJSON(w, http.StatusCreated, furniture)
	return nil
}

// UpdateFurniture godoc
// @Summary      Edit a catalog item
// @Tags         furnitures
// @Accept       json
// @Produce      json
// @Param        id path int true "Furniture id"
// @Param        request body model.UpdateFurnitureRequest true "Fields to change"
// @Success      200 {object} model.Furniture
// @Failure      403 {object} common.AppError
// @Failure      404 {object} common.AppError
// @Failure      409 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/furnitures/{id} [put]
func (h *FurnitureHandler) UpdateFurniture(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := parseFurnitureID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateFurnitureRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	furniture, err := h.service.GetFurniture(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, common.CodeNotFound, "Furniture with the specified ID was not found.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not retrieve furniture", err)
	}

	if req.Name != nil {
		furniture.Name = *req.Name
	}
	if req.Description != nil {
		furniture.Description = *req.Description
	}
	if req.Color != nil {
		furniture.Color = *req.Color
	}
	if req.Price != nil {
		furniture.Price = *req.Price
	}
	if req.Featured != nil {
		furniture.Featured = *req.Featured
	}
	if req.Stock != nil {
		furniture.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		furniture.ImageURL = req.ImageURL
	}

	if err := h.service.UpdateFurniture(furniture); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return common.NewAppError(http.StatusConflict, common.CodeConflict, "A furniture with this name already exists.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not update furniture", err)
	}

	writeJSON(w, http.StatusOK, furniture)
	return nil
}

// DeleteFurniture godoc
// @Summary      Remove a catalog item
// @Tags         furnitures
// @Param        id path int true "Furniture id"
// @Success      204 "No Content"
// @Failure      403 {object} common.AppError
// @Failure      404 {object} common.AppError
// @Security     BearerAuth
// @Router       /api/v1/furnitures/{id} [delete]
func (h *FurnitureHandler) DeleteFurniture(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := parseFurnitureID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteFurniture(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, common.CodeNotFound, "Furniture with the specified ID was not found.", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternalError, "Could not delete furniture", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

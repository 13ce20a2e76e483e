package controllers

import (
	"strconv"

	"burger-shop/models"
	"burger-shop/services"
	"burger-shop/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalogService *services.CatalogService
}

func NewProductController(catalogService *services.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// GetAllCategories godoc
// @Summary List categories
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Categories retrieved successfully", categories)
}

// GetAllProducts godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param category_id query int false "Category filter"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	var categoryID *int
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			utils.RespondError(c, models.NewValidationError("category_id", "must be a positive integer"))
			return
		}
		categoryID = &id
	}

	products, err := ctrl.catalogService.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Products retrieved successfully", products)
}

// GetRecommendations godoc
// @Summary Recommended products
// @Description Best sellers by ordered quantity, newest products when nothing has sold yet
// @Tags Products
// @Produce json
// @Param limit query int false "Maximum number of products"
// @Success 200 {object} models.Response
// @Router /products/recommendations [get]
func (ctrl *ProductController) GetRecommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	products, err := ctrl.catalogService.Recommendations(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Recommendations retrieved successfully", products)
}

// GetProductByID godoc
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := utils.ParamInt(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Product retrieved successfully", product)
}

// CreateProduct godoc
// @Summary Create product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, "Product created successfully", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := utils.ParamInt(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.catalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Product updated successfully", product)
}

package controllers

import (
	"burger-shop/models"
	"burger-shop/services"
	"burger-shop/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart godoc
// @Summary View cart
// @Description Lines joined with current product data and an estimated total
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /carts [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	view, err := ctrl.cartService.View(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Cart retrieved successfully", view)
}

// AddItem godoc
// @Summary Add to cart
// @Description Adding a product already in the cart increases its quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddCartItemRequest true "Cart item"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /carts/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	line, err := ctrl.cartService.AddItem(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, "Item added to cart", line)
}

// UpdateItem godoc
// @Summary Set cart line quantity
// @Description A quantity of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path int true "Cart line ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/items/{itemId} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	lineID, err := utils.ParamInt(c, "itemId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	line, err := ctrl.cartService.SetQuantity(c.Request.Context(), utils.CurrentUserID(c), lineID, *req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if line == nil {
		utils.RespondOK(c, "Item removed from cart", nil)
		return
	}
	utils.RespondOK(c, "Cart item updated", line)
}

// RemoveItem godoc
// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param itemId path int true "Cart line ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /carts/items/{itemId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	lineID, err := utils.ParamInt(c, "itemId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.cartService.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), lineID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Item removed from cart", nil)
}

// ClearCart godoc
// @Summary Empty cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /carts [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.Clear(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Cart cleared", nil)
}

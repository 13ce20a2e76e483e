package controllers

import (
	"burger-shop/models"
	"burger-shop/services"
	"burger-shop/utils"

	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService *services.AddressService
}

func NewAddressController(addressService *services.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

// GetAddresses godoc
// @Summary List addresses
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /addresses [get]
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	addresses, err := ctrl.addressService.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Addresses retrieved successfully", addresses)
}

// CreateAddress godoc
// @Summary Add address
// @Tags Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddressRequest true "Address"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /addresses [post]
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	address, err := ctrl.addressService.Create(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, "Address created successfully", address)
}

// UpdateAddress godoc
// @Summary Update address
// @Tags Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Param request body models.UpdateAddressRequest true "Fields to change"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /addresses/{id} [put]
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	id, err := utils.ParamInt(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "Invalid request", err)
		return
	}

	address, err := ctrl.addressService.Update(c.Request.Context(), utils.CurrentUserID(c), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Address updated successfully", address)
}

// DeleteAddress godoc
// @Summary Delete address
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /addresses/{id} [delete]
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	id, err := utils.ParamInt(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.addressService.Delete(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Address deleted successfully", nil)
}

// SetDefaultAddress godoc
// @Summary Set default address
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Router /addresses/{id}/default [patch]
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	id, err := utils.ParamInt(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	address, err := ctrl.addressService.SetDefault(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Default address updated", address)
}

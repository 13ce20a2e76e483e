package services

import (
	"context"
	"strings"

	"burger-shop/models"
	"burger-shop/repositories"
)

type AddressService struct {
	store repositories.Store
}

func NewAddressService(store repositories.Store) *AddressService {
	return &AddressService{store: store}
}

func (s *AddressService) List(ctx context.Context, userID int) ([]models.Address, error) {
	return s.store.Addresses().ListByUser(ctx, userID)
}

// Create stores the address. The first address of a user becomes the default.
func (s *AddressService) Create(ctx context.Context, userID int, req models.AddressRequest) (*models.Address, error) {
	address := &models.Address{
		UserID:       userID,
		ReceiverName: strings.TrimSpace(req.ReceiverName),
		Phone:        strings.TrimSpace(req.Phone),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		existing, err := tx.Addresses().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Addresses().Create(ctx, address); err != nil {
			return err
		}
		if req.IsDefault || len(existing) == 0 {
			if err := tx.Addresses().SetDefault(ctx, userID, address.ID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id int, req models.UpdateAddressRequest) (*models.Address, error) {
	var address *models.Address

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		a, err := tx.Addresses().FindForUser(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.ReceiverName != nil {
			a.ReceiverName = strings.TrimSpace(*req.ReceiverName)
		}
		if req.Phone != nil {
			a.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.AddressLine1 != nil {
			a.AddressLine1 = strings.TrimSpace(*req.AddressLine1)
		}
		if req.AddressLine2 != nil {
			a.AddressLine2 = strings.TrimSpace(*req.AddressLine2)
		}
		if a.ReceiverName == "" || a.AddressLine1 == "" {
			return models.NewValidationError("address", "receiver name and address line are required")
		}

		if err := tx.Addresses().Update(ctx, a); err != nil {
			return err
		}
		if req.IsDefault != nil && *req.IsDefault && !a.IsDefault {
			if err := tx.Addresses().SetDefault(ctx, userID, a.ID); err != nil {
				return err
			}
			a.IsDefault = true
		}
		address = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id int) error {
	return s.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Addresses().FindForUser(ctx, userID, id); err != nil {
			return err
		}
		return tx.Addresses().Delete(ctx, userID, id)
	})
}

// SetDefault makes id the caller's only default address.
func (s *AddressService) SetDefault(ctx context.Context, userID, id int) (*models.Address, error) {
	var address *models.Address

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		a, err := tx.Addresses().FindForUser(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Addresses().SetDefault(ctx, userID, id); err != nil {
			return err
		}
		a.IsDefault = true
		address = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

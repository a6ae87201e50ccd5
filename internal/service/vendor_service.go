package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VendorServiceImpl implements ports.VendorService. Vendor detail views are
// composed with the vendor's open pickups pulled from the pickup repository.
type VendorServiceImpl struct {
	vendorRepo ports.VendorRepository
	pickupRepo ports.PickupOrderRepository
	auditSvc   ports.AuditService
	log        zerolog.Logger
}

// NewVendorService creates a new VendorServiceImpl.
func NewVendorService(
	vendorRepo ports.VendorRepository,
	pickupRepo ports.PickupOrderRepository,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *VendorServiceImpl {
	return &VendorServiceImpl{
		vendorRepo: vendorRepo,
		pickupRepo: pickupRepo,
		auditSvc:   auditSvc,
		log:        log,
	}
}

// List returns vendors matching the filters.
func (s *VendorServiceImpl) List(ctx context.Context, params ports.VendorListParams) ([]domain.Vendor, int64, error) {
	vendors, total, err := s.vendorRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return vendors, total, nil
}

// Get returns one vendor with its open pickup orders attached.
func (s *VendorServiceImpl) Get(ctx context.Context, id string) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if vendor == nil {
		return nil, apperror.ErrNotFound("vendor")
	}

	open, err := s.pickupRepo.ListByVendor(ctx, id, true)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	vendor.ActiveOrders = make([]domain.ActiveOrderSummary, 0, len(open))
	for _, o := range open {
		vendor.ActiveOrders = append(vendor.ActiveOrders, domain.ActiveOrderSummary{
			OrderID:         o.ID,
			User:            o.User,
			PickupDate:      o.PickupDate,
			TimeSlot:        o.TimeSlot,
			GoldWeightGrams: o.GoldWeightGrams,
		})
	}
	return vendor, nil
}

// Create registers a new vendor. New vendors start Active and accepting.
func (s *VendorServiceImpl) Create(ctx context.Context, input ports.VendorInput) (*domain.Vendor, error) {
	if err := validateVendorInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vendor := &domain.Vendor{
		ID:              fmt.Sprintf("VEN-%s", strings.ToUpper(uuid.NewString()[:8])),
		Name:            input.Name,
		Location:        input.Location,
		Address:         input.Address,
		City:            input.City,
		Zip:             input.Zip,
		ContactPerson:   input.ContactPerson,
		Phone:           input.Phone,
		Email:           input.Email,
		Status:          domain.VendorStatusActive,
		AcceptingOrders: true,
		TimeSlots:       input.TimeSlots,
		LinkedVaults:    input.LinkedVaults,
		DeliveryType:    input.DeliveryType,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create vendor: %w", err))
	}

	s.audit(ctx, vendor.ID, "created")
	s.log.Info().Str("vendor_id", vendor.ID).Str("name", vendor.Name).Msg("vendor created")
	return vendor, nil
}

// Update edits a vendor's profile and configuration.
func (s *VendorServiceImpl) Update(ctx context.Context, id string, input ports.VendorInput) (*domain.Vendor, error) {
	if err := validateVendorInput(input); err != nil {
		return nil, err
	}

	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor.Name = input.Name
	vendor.Location = input.Location
	vendor.Address = input.Address
	vendor.City = input.City
	vendor.Zip = input.Zip
	vendor.ContactPerson = input.ContactPerson
	vendor.Phone = input.Phone
	vendor.Email = input.Email
	vendor.TimeSlots = input.TimeSlots
	vendor.LinkedVaults = input.LinkedVaults
	vendor.DeliveryType = input.DeliveryType
	vendor.Notes = input.Notes
	vendor.UpdatedAt = time.Now().UTC()

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vendor: %w", err))
	}
	s.audit(ctx, vendor.ID, "updated")
	return vendor, nil
}

// Suspend takes a vendor offline. A suspended vendor stops accepting orders
// at the same time.
func (s *VendorServiceImpl) Suspend(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.setStatus(ctx, id, domain.VendorStatusSuspended, false, "suspended")
}

// Activate brings a suspended vendor back online.
func (s *VendorServiceImpl) Activate(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.setStatus(ctx, id, domain.VendorStatusActive, true, "activated")
}

// SetAcceptingOrders toggles intake without changing the vendor's status.
// Only an active vendor can open intake.
func (s *VendorServiceImpl) SetAcceptingOrders(ctx context.Context, id string, accepting bool) (*domain.Vendor, error) {
	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if accepting && !vendor.IsActive() {
		return nil, apperror.ErrVendorNotAccepting()
	}

	vendor.AcceptingOrders = accepting
	vendor.UpdatedAt = time.Now().UTC()
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vendor: %w", err))
	}
	s.audit(ctx, vendor.ID, fmt.Sprintf("accepting_orders=%t", accepting))
	return vendor, nil
}

func (s *VendorServiceImpl) setStatus(ctx context.Context, id string, status domain.VendorStatus, accepting bool, detail string) (*domain.Vendor, error) {
	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor.Status = status
	vendor.AcceptingOrders = accepting
	vendor.UpdatedAt = time.Now().UTC()
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vendor: %w", err))
	}

	s.audit(ctx, vendor.ID, detail)
	s.log.Info().Str("vendor_id", vendor.ID).Str("status", string(status)).Msg("vendor status changed")
	return vendor, nil
}

func (s *VendorServiceImpl) audit(ctx context.Context, vendorID, detail string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionVendorChange,
		ResourceType: "vendor",
		ResourceID:   vendorID,
		Details:      fmt.Sprintf(`{"detail":%q}`, detail),
		CreatedAt:    time.Now().UTC(),
	})
}

// validateVendorInput enforces the required fields of the add/edit form.
func validateVendorInput(input ports.VendorInput) error {
	required := []struct {
		value string
		name  string
	}{
		{input.Name, "vendor name"},
		{input.Location, "location"},
		{input.Address, "address"},
		{input.City, "city"},
		{input.ContactPerson, "contact person"},
		{input.Phone, "phone"},
		{input.Email, "email"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apperror.Validation(fmt.Sprintf("%s is required", f.name))
		}
	}
	switch input.DeliveryType {
	case domain.VendorDeliveryOnlyPickup, domain.VendorDeliveryDeliverySupport, domain.VendorDeliveryBoth:
	default:
		return apperror.Validation("invalid delivery type")
	}
	return nil
}

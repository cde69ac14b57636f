package repo

import (
	"context"

	"gorm.io/gorm"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/contact"
	"clicksoft-api/internal/feature/customer"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) ListByCustomerWithCustomer(ctx context.Context, customerID uint) ([]domain.ContactWithCustomer, error) {
	db := r.db.WithContext(ctx)
	var ms []contact.ContactModel
	if err := db.Where("customer_id = ?", customerID).Order("id").Find(&ms).Error; err != nil {
		return nil, mapError("list contacts", err)
	}
	out := make([]domain.ContactWithCustomer, 0, len(ms))
	if len(ms) == 0 {
		return out, nil
	}
	var owner customer.CustomerModel
	if err := db.First(&owner, customerID).Error; err != nil {
		return nil, mapError("list contacts", err)
	}
	c := owner.ToDomain()
	for i := range ms {
		out = append(out, domain.ContactWithCustomer{Contact: ms[i].ToDomain(), Customer: &c})
	}
	return out, nil
}

func (r *ContactRepo) Get(ctx context.Context, id uint) (*domain.Contact, error) {
	var m contact.ContactModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get contact", err)
	}
	c := m.ToDomain()
	return &c, nil
}

func (r *ContactRepo) GetWithCustomer(ctx context.Context, id uint) (*domain.ContactWithCustomer, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var owner customer.CustomerModel
	if err := r.db.WithContext(ctx).First(&owner, c.CustomerID).Error; err != nil {
		return nil, mapError("get contact customer", err)
	}
	oc := owner.ToDomain()
	return &domain.ContactWithCustomer{Contact: *c, Customer: &oc}, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	m := contact.FromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapError("create contact", err)
	}
	*c = m.ToDomain()
	return nil
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	m := contact.FromDomain(c)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return mapError("update contact", err)
	}
	*c = m.ToDomain()
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&contact.ContactModel{}, id)
	if res.Error != nil {
		return mapError("delete contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError("delete contact", gorm.ErrRecordNotFound)
	}
	return nil
}

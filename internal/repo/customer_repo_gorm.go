package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/customer"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func orderContacts(db *gorm.DB) *gorm.DB { return db.Order("contacts.id") }

func (r *CustomerRepo) ListWithContacts(ctx context.Context) ([]domain.CustomerWithContacts, error) {
	var ms []customer.CustomerModel
	err := r.db.WithContext(ctx).Preload("Contacts", orderContacts).Order("customers.id").Find(&ms).Error
	if err != nil {
		return nil, mapError("list customers", err)
	}
	out := make([]domain.CustomerWithContacts, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomainWithContacts())
	}
	return out, nil
}

func (r *CustomerRepo) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	var m customer.CustomerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get customer", err)
	}
	c := m.ToDomain()
	return &c, nil
}

func (r *CustomerRepo) GetWithContacts(ctx context.Context, id uint) (*domain.CustomerWithContacts, error) {
	var m customer.CustomerModel
	if err := r.db.WithContext(ctx).Preload("Contacts", orderContacts).First(&m, id).Error; err != nil {
		return nil, mapError("get customer", err)
	}
	c := m.ToDomainWithContacts()
	return &c, nil
}

func (r *CustomerRepo) FindByCNPJ(ctx context.Context, cnpj string) (*domain.Customer, error) {
	var m customer.CustomerModel
	err := r.db.WithContext(ctx).First(&m, "cnpj = ?", cnpj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("find customer by cnpj", err)
	}
	c := m.ToDomain()
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	m := customer.FromDomain(c)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return mapError("create customer", err)
	}
	*c = m.ToDomain()
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	m := customer.FromDomain(c)
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(m)
	if res.Error != nil {
		return mapError("update customer", res.Error)
	}
	*c = m.ToDomain()
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&customer.CustomerModel{}, id)
	if res.Error != nil {
		return mapError("delete customer", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError("delete customer", gorm.ErrRecordNotFound)
	}
	return nil
}

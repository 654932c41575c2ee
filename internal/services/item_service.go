package services

import (
	"taskhub/internal/database"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// ItemService handles business logic related to items.
type ItemService struct {
	repo   repositories.ItemRepository
	events *Events
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository, events *Events) *ItemService {
	return &ItemService{repo: repo, events: events}
}

// Create stores a new item and returns its public form.
func (s *ItemService) Create(sess *database.Session, in models.ItemCreate) (*models.ItemPublic, error) {
	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if err := s.repo.Create(sess.DB, item); err != nil {
		return nil, err
	}

	out := item.Public()
	s.events.emit(sess, "item.created", item.ID, out)
	return &out, nil
}

// List returns one page of items in insertion order.
func (s *ItemService) List(sess *database.Session, page Page) ([]models.ItemPublic, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.List(sess.DB, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.ItemPublic, 0, len(items))
	for i := range items {
		out = append(out, items[i].Public())
	}
	return out, nil
}

// Get retrieves a single item by its ID.
func (s *ItemService) Get(sess *database.Session, id uint) (*models.ItemPublic, error) {
	item, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}
	out := item.Public()
	return &out, nil
}

// Update applies the fields present in patch and leaves the rest untouched.
func (s *ItemService) Update(sess *database.Session, id uint, patch models.ItemUpdate) (*models.ItemPublic, error) {
	item, err := s.repo.GetByID(sess.DB, id)
	if err != nil {
		return nil, err
	}

	changes := itemChanges(patch)
	if len(changes) > 0 {
		if err := s.repo.Update(sess.DB, item, changes); err != nil {
			return nil, err
		}
		s.events.emit(sess, "item.updated", item.ID, item.Public())
	}

	out := item.Public()
	return &out, nil
}

// Delete removes an item permanently.
func (s *ItemService) Delete(sess *database.Session, id uint) error {
	if err := s.repo.Delete(sess.DB, id); err != nil {
		return err
	}
	s.events.emit(sess, "item.deleted", id, nil)
	return nil
}

func itemChanges(patch models.ItemUpdate) map[string]any {
	changes := map[string]any{}
	if patch.Name != nil {
		changes["name"] = *patch.Name
	}
	if patch.Description.Set {
		changes["description"] = patch.Description.Column()
	}
	if patch.Price != nil {
		changes["price"] = *patch.Price
	}
	if patch.OwnerID.Set {
		changes["owner_id"] = patch.OwnerID.Column()
	}
	return changes
}

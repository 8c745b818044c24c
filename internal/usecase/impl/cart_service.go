package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "muziris/internal/delivery/context"
	"muziris/internal/domain/entity"
	domainerrors "muziris/internal/domain/errors"
	"muziris/internal/domain/repository"
	"muziris/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sampleCatalog is served when the spices collection is empty, so a fresh
// deployment has a browsable storefront before any catalog import runs.
var sampleCatalog = []*entity.Spice{
	{
		ID:          "saffron-kashmiri",
		Name:        "Kashmiri Saffron",
		Origin:      "Kashmir, India",
		Description: "The world's most precious spice, hand-harvested from Crocus sativus flowers in the Kashmir Valley. Deep crimson threads with an intensely aromatic, slightly sweet flavor.",
		Price:       89.99,
		Unit:        "1g",
		InStock:     true,
	},
	{
		ID:          "vanilla-tahitian",
		Name:        "Tahitian Vanilla",
		Origin:      "Tahiti, French Polynesia",
		Description: "Plump, moist pods with floral and fruity notes. Unlike Madagascar vanilla, Tahitian beans have a delicate, cherry-chocolate undertone perfect for desserts and beverages.",
		Price:       45.00,
		Unit:        "2 pods",
		InStock:     true,
	},
	{
		ID:          "cardamom-guatemalan",
		Name:        "Guatemalan Cardamom",
		Origin:      "Guatemala",
		Description: "Green cardamom pods with intense eucalyptus and camphor notes. Hand-picked at peak maturity from high-altitude plantations in the Guatemalan highlands.",
		Price:       34.99,
		Unit:        "50g",
		InStock:     true,
	},
	{
		ID:          "peppercorns-tellicherry",
		Name:        "Tellicherry Black Pepper",
		Origin:      "Kerala, India",
		Description: "Extra-bold peppercorns left to ripen longer on the vine. Complex flavor profile with citrus notes and deep, warm heat. The gold standard of black pepper.",
		Price:       28.50,
		Unit:        "100g",
		InStock:     true,
	},
	{
		ID:          "cinnamon-ceylon",
		Name:        "Ceylon Cinnamon",
		Origin:      "Sri Lanka",
		Description: "True cinnamon with delicate, sweet flavor and subtle citrus notes. Hand-rolled quills from inner bark of Cinnamomum verum trees. Superior to common cassia.",
		Price:       22.00,
		Unit:        "50g",
		InStock:     true,
	},
	{
		ID:          "sumac-wild",
		Name:        "Wild Sumac",
		Origin:      "Anatolia, Turkey",
		Description: "Tangy, lemony berries harvested from wild sumac shrubs. Ground to a coarse powder with deep burgundy color. Essential in Middle Eastern cuisine.",
		Price:       18.99,
		Unit:        "75g",
		InStock:     true,
	},
}

// cartService implements the CartUsecase interface.
type cartService struct {
	spiceRepo repository.SpiceRepository
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for the cart service, injected by Fx.
type CartServiceParams struct {
	fx.In

	SpiceRepo repository.SpiceRepository
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		spiceRepo: params.SpiceRepo,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListSpices returns the catalog, falling back to the built-in sample set
// when the collection holds no documents.
func (srv *cartService) ListSpices(ctx context.Context) ([]*entity.Spice, error) {
	spices, err := srv.spiceRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spices")
	}

	if len(spices) == 0 {
		srv.log(ctx).Debug("Spice collection empty, serving sample catalog")

		return sampleCatalog, nil
	}

	return spices, nil
}

// GetCart returns the user's cart; a user who never added anything gets an
// empty cart, not an error.
func (srv *cartService) GetCart(ctx context.Context, userID string) (*entity.UserCart, error) {
	cart, err := srv.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &entity.UserCart{UserID: userID, Items: []entity.CartItem{}}, nil
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	return cart, nil
}

// AddItem inserts a line with quantity one or increments an existing line.
// The line snapshots the catalog name and price at add time.
func (srv *cartService) AddItem(ctx context.Context, userID, spiceID string) (*entity.UserCart, error) {
	spice, err := srv.findSpice(ctx, spiceID)
	if err != nil {
		return nil, err
	}

	cart, err := srv.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Add(spice, uuid.NewString())
	cart.UpdatedAt = time.Now()

	if err := srv.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// SetQuantity updates a line's quantity. Zero removes the line; a positive
// quantity for a spice not yet in the cart inserts exactly one line at that
// quantity, snapshotting the catalog name and price like AddItem does.
func (srv *cartService) SetQuantity(ctx context.Context, userID, spiceID string, quantity int) (*entity.UserCart, error) {
	cart, err := srv.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(spiceID, quantity) {
		spice, err := srv.findSpice(ctx, spiceID)
		if err != nil {
			return nil, err
		}
		cart.Add(spice, uuid.NewString())
		cart.SetQuantity(spiceID, quantity)
	}
	cart.UpdatedAt = time.Now()

	if err := srv.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return cart, nil
}

// findSpice resolves a catalog item from the store, or from the sample
// catalog when the collection is empty.
func (srv *cartService) findSpice(ctx context.Context, spiceID string) (*entity.Spice, error) {
	spice, err := srv.spiceRepo.FindByID(ctx, spiceID)
	if err == nil {
		return spice, nil
	}
	if !errors.Is(err, repository.ErrSpiceNotFound) {
		return nil, errors.Wrap(err, "failed to look up spice")
	}

	for _, sample := range sampleCatalog {
		if sample.ID == spiceID {
			return sample, nil
		}
	}

	return nil, domainerrors.ErrSpiceNotFound
}

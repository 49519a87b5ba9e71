package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/freshkart/shopapi/internal/blobstore"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/logging"
)

type itemRef struct {
	productID uuid.UUID
	quantity  uint
}

func productView(p models.Product) transport.ProductView {
	return transport.ProductView{
		ID:              p.ID,
		Title:           p.Title,
		NewPrice:        p.NewPrice,
		OldPrice:        p.OldPrice,
		Discount:        p.Discount,
		Brand:           p.Brand,
		Category:        p.Category,
		Img:             nil,
		Description:     p.Description,
		NetWeight:       p.NetWeight,
		ProductFeatures: p.ProductFeatures,
		DirectionToUse:  p.DirectionToUse,
	}
}

// signImages resolves object keys to signed URLs, fanning out one call per
// image. Failures are isolated: a view whose key cannot be signed keeps a
// null image, siblings are unaffected and nothing is cancelled.
func signImages(ctx context.Context, signer blobstore.Signer, views []*transport.ProductView, keys []string) {
	var wg sync.WaitGroup
	for i := range views {
		if views[i] == nil || keys[i] == "" {
			continue
		}
		wg.Add(1)
		go func(v *transport.ProductView, key string) {
			defer wg.Done()
			url, err := signer.SignedURL(ctx, key)
			if err != nil {
				logging.FromContext(ctx).Warn("image_sign_failed", "key", key, "error", err)
				return
			}
			if url != "" {
				v.Img = &url
			}
		}(views[i], keys[i])
	}
	wg.Wait()
}

// resolveProducts turns product records into display-ready views with
// signed image URLs.
func resolveProducts(ctx context.Context, signer blobstore.Signer, products []models.Product) []transport.ProductView {
	views := make([]transport.ProductView, len(products))
	ptrs := make([]*transport.ProductView, len(products))
	keys := make([]string, len(products))
	for i, p := range products {
		views[i] = productView(p)
		ptrs[i] = &views[i]
		keys[i] = p.Img
	}
	signImages(ctx, signer, ptrs, keys)
	return views
}

// resolveLineItems joins line-item references against their products and
// signs the images. A reference to a since-deleted product keeps its
// quantity but carries a null product.
func resolveLineItems(ctx context.Context, signer blobstore.Signer, products map[uuid.UUID]models.Product, refs []itemRef) []transport.LineItemView {
	views := make([]transport.LineItemView, len(refs))
	ptrs := make([]*transport.ProductView, len(refs))
	keys := make([]string, len(refs))
	for i, ref := range refs {
		views[i].Quantity = ref.quantity
		p, ok := products[ref.productID]
		if !ok {
			continue
		}
		pv := productView(p)
		views[i].Product = &pv
		ptrs[i] = views[i].Product
		keys[i] = p.Img
	}
	signImages(ctx, signer, ptrs, keys)
	return views
}

package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.PCPart{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedProduct(t *testing.T, repo *Repository, name string, category enums.ProductCategory, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: category,
		Price:    dec(price),
		Stock:    stock,
	}
	created, err := repo.CreateProduct(context.Background(), product)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return created
}

func seedPart(t *testing.T, repo *Repository, name string, partType enums.PartType, price int64, stock int) *models.PCPart {
	t.Helper()
	part := &models.PCPart{
		Name:     name,
		PartType: partType,
		Price:    dec(price),
		Stock:    stock,
	}
	created, err := repo.CreatePart(context.Background(), part)
	if err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return created
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := newTestRepo(t)
	svc := &service{repo: repo}
	return svc, repo
}

func TestListByTagRoutesToCollections(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seedProduct(t, repo, "Lenovo IdeaPad 3", enums.ProductCategoryLaptop, 65000, 10)
	seedProduct(t, repo, "Dell UltraSharp", enums.ProductCategoryMonitor, 42000, 4)
	seedPart(t, repo, "Ryzen 5 5600", enums.PartTypeCPU, 22000, 8)

	laptops, err := svc.ListByTag(ctx, "laptop")
	if err != nil {
		t.Fatalf("list laptops: %v", err)
	}
	if len(laptops) != 1 || laptops[0].Name != "Lenovo IdeaPad 3" {
		t.Fatalf("unexpected laptops %+v", laptops)
	}
	if laptops[0].Collection != enums.CollectionProducts {
		t.Fatalf("category tag should route to products, got %s", laptops[0].Collection)
	}

	cpus, err := svc.ListByTag(ctx, "cpu")
	if err != nil {
		t.Fatalf("list cpus: %v", err)
	}
	if len(cpus) != 1 || cpus[0].Collection != enums.CollectionPCParts {
		t.Fatalf("part tag should route to pc_parts, got %+v", cpus)
	}

	_, err = svc.ListByTag(ctx, "spaceship")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown tag, got %v", err)
	}
}

func TestListByTagAllSpansBothCollections(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seedProduct(t, repo, "Lenovo IdeaPad 3", enums.ProductCategoryLaptop, 65000, 10)
	seedPart(t, repo, "Ryzen 5 5600", enums.PartTypeCPU, 22000, 8)

	items, err := svc.ListByTag(ctx, "all")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items across collections, got %d", len(items))
	}
	seen := map[enums.Collection]bool{}
	for _, item := range items {
		seen[item.Collection] = true
	}
	if !seen[enums.CollectionProducts] || !seen[enums.CollectionPCParts] {
		t.Fatalf("expected both collections represented, got %+v", items)
	}

	items, err = svc.ListByTag(ctx, "  all ")
	if err != nil {
		t.Fatalf("list all with padding: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected tag trimming before routing, got %d items", len(items))
	}
}

func TestStorefrontJoinsCatalogAndOffers(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "HP Pavilion", enums.ProductCategoryLaptop, 90000, 3)
	product.IsOffer = true
	product.OfferPrice.Decimal = dec(75000)
	product.OfferPrice.Valid = true
	if _, err := repo.UpdateProduct(ctx, product); err != nil {
		t.Fatalf("flag offer: %v", err)
	}
	seedPart(t, repo, "RTX 4060", enums.PartTypeGPU, 48000, 6)

	view, err := svc.Storefront(ctx)
	if err != nil {
		t.Fatalf("storefront: %v", err)
	}
	if len(view.Products) != 1 || len(view.PCParts) != 1 {
		t.Fatalf("unexpected catalog sizes %d/%d", len(view.Products), len(view.PCParts))
	}
	if len(view.Offers) != 1 || view.Offers[0].Name != "HP Pavilion" {
		t.Fatalf("unexpected offers %+v", view.Offers)
	}
	if !view.Offers[0].EffectivePrice.Equal(dec(75000)) {
		t.Fatalf("offer effective price wrong: %s", view.Offers[0].EffectivePrice)
	}
}

func TestListPartsBySlotSortsCheapestFirst(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seedPart(t, repo, "Ryzen 7 5800X", enums.PartTypeCPU, 38000, 5)
	cheap := seedPart(t, repo, "Ryzen 5 5600", enums.PartTypeCPU, 22000, 5)
	cheap.IsOffer = true
	cheap.OfferPrice.Decimal = dec(19000)
	cheap.OfferPrice.Valid = true
	if _, err := repo.UpdatePart(ctx, cheap); err != nil {
		t.Fatalf("flag offer: %v", err)
	}
	seedPart(t, repo, "RTX 4070", enums.PartTypeGPU, 85000, 2)

	cpus, err := svc.ListPartsBySlot(ctx, enums.PartTypeCPU)
	if err != nil {
		t.Fatalf("list slot: %v", err)
	}
	if len(cpus) != 2 {
		t.Fatalf("expected 2 cpus, got %d", len(cpus))
	}
	if cpus[0].Name != "Ryzen 5 5600" {
		t.Fatalf("expected cheapest first, got %+v", cpus)
	}
	if !cpus[0].EffectivePrice.Equal(dec(19000)) {
		t.Fatalf("offer price should drive the sort, got %s", cpus[0].EffectivePrice)
	}
}

func TestCreateItemRoutesByTag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	laptop, err := svc.CreateItem(ctx, CreateItemInput{
		Name:  "Asus VivoBook",
		Tag:   "laptop",
		Price: dec(78000),
		Stock: 4,
	})
	if err != nil {
		t.Fatalf("create laptop: %v", err)
	}
	if laptop.Collection != enums.CollectionProducts {
		t.Fatalf("laptop landed in %s", laptop.Collection)
	}

	gpu, err := svc.CreateItem(ctx, CreateItemInput{
		Name:  "RTX 4070",
		Tag:   "gpu",
		Price: dec(85000),
		Stock: 2,
	})
	if err != nil {
		t.Fatalf("create gpu: %v", err)
	}
	if gpu.Collection != enums.CollectionPCParts {
		t.Fatalf("gpu landed in %s", gpu.Collection)
	}

	_, err = svc.CreateItem(ctx, CreateItemInput{Name: "Bad", Tag: "nonsense", Price: dec(1), Stock: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateItem(ctx, CreateItemInput{Name: "Flagged", Tag: "laptop", Price: dec(100), IsOffer: true, Stock: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for offer without price, got %v", err)
	}
}

func TestUpdateItemAndNotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "HP Pavilion", enums.ProductCategoryLaptop, 90000, 3)

	newStock := 0
	updated, err := svc.UpdateItem(ctx, enums.CollectionProducts, product.ID, UpdateItemInput{Stock: &newStock})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 0 || updated.StockLabel != "Out of stock" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	_, err = svc.UpdateItem(ctx, enums.CollectionProducts, 9999, UpdateItemInput{Stock: &newStock})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	badTag := "cpu"
	_, err = svc.UpdateItem(ctx, enums.CollectionProducts, product.ID, UpdateItemInput{Tag: &badTag})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for cross-collection tag, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	part := seedPart(t, repo, "Corsair RM750", enums.PartTypePSU, 16000, 7)

	if err := svc.DeleteItem(ctx, enums.CollectionPCParts, part.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := svc.GetItem(ctx, enums.CollectionPCParts, part.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDecrementStockGuardsAgainstNegative(t *testing.T) {
	_, repo := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "Mini PC", enums.ProductCategoryDesktopPC, 55000, 2)

	ok, err := repo.DecrementProductStock(ctx, product.ID, 2)
	if err != nil || !ok {
		t.Fatalf("decrement within stock failed: ok=%v err=%v", ok, err)
	}

	ok, err = repo.DecrementProductStock(ctx, product.ID, 1)
	if err != nil {
		t.Fatalf("decrement err: %v", err)
	}
	if ok {
		t.Fatal("decrement past zero should be refused")
	}
}

func TestGroupedItems(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seedProduct(t, repo, "Lenovo IdeaPad 3", enums.ProductCategoryLaptop, 65000, 10)
	seedProduct(t, repo, "HP Pavilion", enums.ProductCategoryLaptop, 90000, 0)
	seedPart(t, repo, "Ryzen 5 5600", enums.PartTypeCPU, 22000, 3)

	groups, err := svc.GroupedItems(ctx)
	if err != nil {
		t.Fatalf("grouped items: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	for _, group := range groups {
		switch group.Tag {
		case "laptop":
			if group.Count != 2 || group.OutOfStock != 1 {
				t.Fatalf("unexpected laptop group %+v", group)
			}
		case "cpu":
			if group.Count != 1 || group.LowStock != 1 {
				t.Fatalf("unexpected cpu group %+v", group)
			}
		default:
			t.Fatalf("unexpected group %q", group.Tag)
		}
	}
}

package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tcm-webshop/models"
)

// Mongo is the MongoDB-backed Store.
type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
}

// Connect dials MongoDB and pings it before returning the client.
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// NewMongo creates a Mongo store over the webshop database.
func NewMongo(client *mongo.Client) *Mongo {
	db := client.Database("webshop")
	return &Mongo{
		users:    db.Collection("users"),
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
	}
}

func (s *Mongo) CreateUser(ctx context.Context, user *models.User) (string, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	count, err := s.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.Email = email
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Mongo) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Mongo) Products(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Mongo) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Mongo) CreateProduct(ctx context.Context, p *models.Product) (string, error) {
	p.ID = uuid.NewString()
	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *Mongo) DeleteProduct(ctx context.Context, id string) error {
	ordered, err := s.orders.CountDocuments(ctx, bson.M{"lines.product_id": id})
	if err != nil {
		return err
	}
	if ordered > 0 {
		return ErrProductOrdered
	}

	result, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	var updated models.Product
	err := s.products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return updated.Stock, nil
}

// DecrementStock filters on stock >= qty so two racing orders cannot
// oversell.
func (s *Mongo) DecrementStock(ctx context.Context, id string, qty int) error {
	result, err := s.products.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := s.products.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (s *Mongo) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	order.ID = uuid.NewString()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.ID, nil
}

func (s *Mongo) Orders(ctx context.Context) ([]models.AdminOrder, error) {
	cursor, err := s.orders.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	out := make([]models.AdminOrder, 0, len(orders))
	for _, o := range orders {
		ao := models.AdminOrder{Order: o}
		var user models.User
		if err := s.users.FindOne(ctx, bson.M{"_id": o.UserID}).Decode(&user); err == nil {
			ao.FullName = user.FullName
			ao.Email = user.Email
			ao.Address = user.Address
			ao.City = user.City
			ao.PostalCode = user.PostalCode
		}
		out = append(out, ao)
	}
	return out, nil
}

package store

import (
	"context"
	"errors"

	"tcm-webshop/models"
)

// AdminEmail is the seeded administrator account.
const AdminEmail = "admin@example.com"

// seedProducts is the TCM Elektromobile demo catalog.
var seedProducts = []models.Product{
	{Name: "Elektrofighter Typhoon", Description: "Dieser Jet fliegt so leise, dass er nicht nur die Feinde überrascht – auch der Stromzähler hat keine Chance, mitzuzählen!", PriceCents: 67000000, Stock: 5},
	{Name: "PorschE 911", Description: "Rennstrecke? Einfach einstecken und loszischen – Ampere inklusive.", PriceCents: 18700000, Stock: 8},
	{Name: "Vermeiren Mercurius 4D", Description: "Der erste Wagen, der nicht nur die Strasse, sondern auch die Zeit leicht biegt – und dabei völlig emissionsfrei bleibt.", PriceCents: 2500000, Stock: 12},
	{Name: "Harley d'E vidsons", Description: "Klassisches Harley-Feeling mit Elektro-Kick: knattert nicht mehr, summt nur charmant wie ein Bienenvolk auf Koffein.", PriceCents: 2000000, Stock: 15},
	{Name: "USS E-Ntreprise", Description: "Leise wie ein Schatten, stark wie ein Blitz – und immer galaktisch stylisch.", PriceCents: 5400000000, Stock: 2},
	{Name: "USS Gerald E Ford", Description: "Modern, mächtig und elektrisch – jetzt können Flugzeugträger auch leise und umweltfreundlich patrouillieren, ohne dass die Fische wegrennen.", PriceCents: 9200000000, Stock: 1},
	{Name: "E-SaturnV", Description: "Die legendäre Rakete mit Elektroantrieb: der Countdown endet, der Blitz startet – und die Erde wird sanft in Richtung Mond geschubst.", PriceCents: 10000000000100, Stock: 1},
	{Name: "E-Nuke", Description: "Kleine Elektroschockwelle beim Einschlag", PriceCents: 42000000000, Stock: 3},
	{Name: "E-Rbus 380", Description: "Jumbojet trifft E-Mobilität: so gross, dass selbst die Wolken den Kopf einziehen.", PriceCents: 1000000000, Stock: 2},
	{Name: "Tupol-Volt 144", Description: "„Abstürze? Nur, wenn du vergisst, ihn wieder aufzuladen!“", PriceCents: 2550, Stock: 25},
	{Name: "DeLorean DMC-12", Description: "Der DeLorean DMC-12 ist eine ikonische Design-Legende mit Edelstahlkarosserie und Flügeltüren, die als Kultfahrzeug sogar für Zeitreisen steht und futurisches Denken sowie Innovation verkörpert.", PriceCents: 100000000000000, Stock: 1},
	{Name: "E-Landrover Serie III", Description: "Der bekannte Landrover der Serie III jetzt als Elektrofahrzeug.", PriceCents: 6700000, Stock: 7},
}

// EnsureSeed loads the demo catalog when the product table is empty and
// creates the admin account when it is missing. adminPasswordHash must be a
// bcrypt hash.
func EnsureSeed(ctx context.Context, s Store, adminPasswordHash string) error {
	products, err := s.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		for i := range seedProducts {
			p := seedProducts[i]
			if _, err := s.CreateProduct(ctx, &p); err != nil {
				return err
			}
		}
	}

	_, err = s.UserByEmail(ctx, AdminEmail)
	if errors.Is(err, ErrNotFound) {
		_, err = s.CreateUser(ctx, &models.User{
			Email:    AdminEmail,
			Password: adminPasswordHash,
			FullName: "Admin",
			IsAdmin:  true,
		})
	}
	return err
}

package catalog

import "github.com/javajoker/florist-backend/internal/models"

func p(id int, name, description string, price int64, rating float64, category models.Category, flower models.FlowerType, colors, tags []string, featured bool, stock int) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Rating:      rating,
		Category:    category,
		FlowerType:  flower,
		Colors:      colors,
		Tags:        tags,
		Featured:    featured,
		Stock:       stock,
		Image:       imagePath(id),
	}
}

// defaultProducts is the shop's static product table.
var defaultProducts = []models.Product{
	p(1, "Classic Red Rose Bouquet", "Twelve long-stem red roses wrapped in kraft paper with eucalyptus.", 185000, 4.9, models.CategoryBouquet, models.FlowerTypeRose, []string{"red"}, []string{"romantic", "anniversary", "valentine"}, true, 15),
	p(2, "Blush Pink Rose Bouquet", "Soft pink roses with baby's breath for gentle occasions.", 210000, 4.8, models.CategoryBouquet, models.FlowerTypeRose, []string{"pink"}, []string{"romantic", "birthday"}, true, 10),
	p(3, "White Rose Elegance", "Pure white roses arranged in a round hand-tied bouquet.", 225000, 4.7, models.CategoryBouquet, models.FlowerTypeRose, []string{"white"}, []string{"wedding", "sympathy"}, false, 8),
	p(4, "Rainbow Tulip Bouquet", "Fifteen tulips in mixed spring colours.", 275000, 4.6, models.CategoryBouquet, models.FlowerTypeTulip, []string{"red", "yellow", "pink", "purple"}, []string{"birthday", "cheerful"}, true, 6),
	p(5, "Yellow Tulip Sunshine", "Bright yellow tulips to light up any room.", 240000, 4.5, models.CategoryBouquet, models.FlowerTypeTulip, []string{"yellow"}, []string{"cheerful", "get-well"}, false, 12),
	p(6, "Purple Tulip Grace", "Deep purple tulips wrapped in lilac tissue.", 255000, 4.4, models.CategoryBouquet, models.FlowerTypeTulip, []string{"purple"}, []string{"graduation", "birthday"}, false, 0),
	p(7, "Gerbera Joy Bouquet", "Orange and yellow gerberas with green filler.", 150000, 4.6, models.CategoryBouquet, models.FlowerTypeGerbera, []string{"orange", "yellow"}, []string{"cheerful", "birthday"}, false, 20),
	p(8, "Pink Gerbera Delight", "Hot pink gerberas for a playful gift.", 140000, 4.3, models.CategoryBouquet, models.FlowerTypeGerbera, []string{"pink"}, []string{"birthday", "friendship"}, false, 14),
	p(9, "Blue Hydrangea Cloud", "Fluffy blue hydrangeas in a pastel wrap.", 320000, 4.8, models.CategoryBouquet, models.FlowerTypeHydrangea, []string{"blue"}, []string{"wedding", "anniversary"}, true, 5),
	p(10, "White Hydrangea Dream", "Creamy white hydrangea heads with silver dollar eucalyptus.", 335000, 4.7, models.CategoryBouquet, models.FlowerTypeHydrangea, []string{"white"}, []string{"wedding", "sympathy"}, false, 4),
	p(11, "Garden Mix Bouquet", "A seasonal mix of roses, gerberas and greenery.", 295000, 4.5, models.CategoryBouquet, models.FlowerTypeMixed, []string{"pink", "white", "orange"}, []string{"birthday", "thank-you"}, true, 9),
	p(12, "Pastel Mix Bouquet", "Soft pastel flowers in a round arrangement.", 310000, 4.6, models.CategoryBouquet, models.FlowerTypeMixed, []string{"pink", "purple", "white"}, []string{"anniversary", "thank-you"}, false, 7),
	p(13, "Red Rose Bunch", "Ten red roses loosely tied, ready for your vase.", 120000, 4.5, models.CategoryBunch, models.FlowerTypeRose, []string{"red"}, []string{"romantic", "valentine"}, false, 25),
	p(14, "Peach Rose Bunch", "Ten peach roses with a satin ribbon.", 125000, 4.4, models.CategoryBunch, models.FlowerTypeRose, []string{"orange", "pink"}, []string{"friendship", "thank-you"}, false, 18),
	p(15, "White Tulip Bunch", "Ten white tulips wrapped in paper.", 160000, 4.3, models.CategoryBunch, models.FlowerTypeTulip, []string{"white"}, []string{"sympathy", "minimalist"}, false, 11),
	p(16, "Red Tulip Bunch", "Ten red tulips for a bold statement.", 160000, 4.4, models.CategoryBunch, models.FlowerTypeTulip, []string{"red"}, []string{"romantic"}, false, 0),
	p(17, "Sunny Gerbera Bunch", "Twelve yellow gerberas tied with twine.", 95000, 4.2, models.CategoryBunch, models.FlowerTypeGerbera, []string{"yellow"}, []string{"cheerful", "get-well"}, false, 30),
	p(18, "Mixed Gerbera Bunch", "Twelve gerberas in assorted colours.", 105000, 4.5, models.CategoryBunch, models.FlowerTypeGerbera, []string{"red", "orange", "pink", "yellow"}, []string{"cheerful", "birthday"}, true, 22),
	p(19, "Blue Hydrangea Stems", "Three fresh hydrangea stems.", 175000, 4.6, models.CategoryBunch, models.FlowerTypeHydrangea, []string{"blue"}, []string{"home-decor"}, false, 6),
	p(20, "Pink Hydrangea Stems", "Three pink hydrangea stems for your home.", 180000, 4.5, models.CategoryBunch, models.FlowerTypeHydrangea, []string{"pink"}, []string{"home-decor", "minimalist"}, false, 3),
	p(21, "Wildflower Bunch", "A farmer's market style mixed bunch.", 115000, 4.1, models.CategoryBunch, models.FlowerTypeMixed, []string{"purple", "yellow", "white"}, []string{"home-decor", "thank-you"}, false, 16),
	p(22, "Rose Flower Bag", "Red roses arranged in a reusable tote bag.", 265000, 4.7, models.CategoryBag, models.FlowerTypeRose, []string{"red"}, []string{"romantic", "anniversary"}, true, 7),
	p(23, "Pink Rose Flower Bag", "Pink roses and carnations in a paper flower bag.", 245000, 4.6, models.CategoryBag, models.FlowerTypeRose, []string{"pink"}, []string{"birthday", "friendship"}, false, 9),
	p(24, "Tulip Flower Bag", "Mixed tulips in a linen carry bag.", 285000, 4.5, models.CategoryBag, models.FlowerTypeTulip, []string{"pink", "white"}, []string{"birthday", "graduation"}, false, 5),
	p(25, "Gerbera Flower Bag", "Bright gerberas in a colourful gift bag.", 175000, 4.4, models.CategoryBag, models.FlowerTypeGerbera, []string{"orange", "red"}, []string{"cheerful", "graduation"}, false, 12),
	p(26, "Hydrangea Flower Bag", "Blue and white hydrangeas in a woven bag.", 355000, 4.8, models.CategoryBag, models.FlowerTypeHydrangea, []string{"blue", "white"}, []string{"wedding", "home-decor"}, true, 4),
	p(27, "Sweet Mix Flower Bag", "Roses, gerberas and fillers in a pastel bag.", 230000, 4.5, models.CategoryBag, models.FlowerTypeMixed, []string{"pink", "white"}, []string{"birthday", "thank-you"}, false, 10),
	p(28, "Graduation Mix Bag", "Sunflower-toned mix for graduation day.", 260000, 4.6, models.CategoryBag, models.FlowerTypeMixed, []string{"yellow", "orange"}, []string{"graduation", "cheerful"}, false, 8),
	p(29, "Grand Rose Bouquet", "Fifty red roses for the grandest gesture.", 850000, 5.0, models.CategoryBouquet, models.FlowerTypeRose, []string{"red"}, []string{"romantic", "anniversary", "luxury"}, true, 2),
	p(30, "Luxury Mixed Bouquet", "Premium roses, hydrangeas and tulips in a tall bouquet.", 650000, 4.9, models.CategoryBouquet, models.FlowerTypeMixed, []string{"white", "pink", "purple"}, []string{"luxury", "wedding"}, false, 3),
}

package fakestore

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/product/pkg/response"
)

func seedProducts() []response.Product {
	return []response.Product{
		{
			Id:          "1",
			Title:       "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
			Price:       decimal.RequireFromString("109.95"),
			Description: "Your perfect pack for everyday use and walks in the forest. Stash your laptop (up to 15 inches) in the padded sleeve.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      response.Rating{Rate: 3.9, Count: 120},
		},
		{
			Id:          "2",
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Price:       decimal.RequireFromString("22.3"),
			Description: "Slim-fitting style, contrast raglan long sleeve, three-button henley placket.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.1, Count: 259},
		},
		{
			Id:          "3",
			Title:       "Solid Gold Petite Micropave",
			Price:       decimal.RequireFromString("168.0"),
			Description: "Satisfaction Guaranteed. Return or exchange any order within 30 days.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71YAIFU48IL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.6, Count: 400},
		},
		{
			Id:          "4",
			Title:       "White Gold Plated Princess",
			Price:       decimal.RequireFromString("9.99"),
			Description: "Classic Created Wedding Engagement Solitaire Diamond Ring for Her.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 3.0, Count: 100},
		},
		{
			Id:          "5",
			Title:       "WD 2TB Elements Portable External Hard Drive",
			Price:       decimal.RequireFromString("64.0"),
			Description: "USB 3.0 and USB 2.0 Compatibility. Fast data transfers.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Rating:      response.Rating{Rate: 4.8, Count: 319},
		},
		{
			Id:          "6",
			Title:       "SanDisk SSD PLUS 1TB Internal SSD",
			Price:       decimal.RequireFromString("109.0"),
			Description: "Easy upgrade for faster boot-up, shutdown, application load and response.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/61U7T1koQqL._AC_SX679_.jpg",
			Rating:      response.Rating{Rate: 4.7, Count: 500},
		},
		{
			Id:          "7",
			Title:       "BIYLACLESEN Men's 3-in-1 Snowboard Jacket",
			Price:       decimal.RequireFromString("99.99"),
			Description: "Waterproof and windproof ski jacket for outdoor winter sports.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/51Y5NI-I5jL._AC_UX679_.jpg",
			Rating:      response.Rating{Rate: 4.2, Count: 150},
		},
		{
			Id:          "8",
			Title:       "Lock and Love Women's Removable Hooded Faux Leather Moto Biker Jacket",
			Price:       decimal.RequireFromString("29.95"),
			Description: "100% polyurethane (shell), 100% polyester (lining). Removable hood.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/81XH0e8fefL._AC_UY879_.jpg",
			Rating:      response.Rating{Rate: 4.0, Count: 340},
		},
		{
			Id:          "9",
			Title:       "John Hardy Women's Legends Naga Gold & Silver Dragon Station Chain Bracelet",
			Price:       decimal.RequireFromString("695.0"),
			Description: "Legendary Naga dragon bracelet inspired by Balinese mythology.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.6, Count: 400},
		},
		{
			Id:          "10",
			Title:       "MBJ Women's Solid Short Sleeve Boat Neck V",
			Price:       decimal.RequireFromString("9.85"),
			Description: "Lightweight and soft fabric with stretch. Ideal for layering.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/71z3kpMAYsL._AC_UY879_.jpg",
			Rating:      response.Rating{Rate: 4.0, Count: 200},
		},
		{
			Id:          "11",
			Title:       "Rain Jacket Women's Lightweight Waterproof Raincoat",
			Price:       decimal.RequireFromString("39.99"),
			Description: "Perfect for outdoor activities. Lightweight and packable.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/71HblAHs5xL._AC_UY879_-2.jpg",
			Rating:      response.Rating{Rate: 4.3, Count: 300},
		},
		{
			Id:          "12",
			Title:       "Samsung 49-Inch CHG90 144Hz Curved Gaming Monitor",
			Price:       decimal.RequireFromString("999.99"),
			Description: "Super ultra-wide 32:9 curved gaming monitor with 144Hz refresh rate.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/81Zt42ioCgL._AC_SX679_.jpg",
			Rating:      response.Rating{Rate: 4.5, Count: 250},
		},
		{
			Id:          "13",
			Title:       "Acer SB220Q bi 21.5 inches Full HD",
			Price:       decimal.RequireFromString("599.99"),
			Description: "Ultra-thin monitor with HDMI and VGA ports. 1920 x 1080 resolution.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/81QpkIctqPL._AC_SX679_.jpg",
			Rating:      response.Rating{Rate: 4.7, Count: 700},
		},
		{
			Id:          "14",
			Title:       "Opna Women's Short Sleeve Moisture",
			Price:       decimal.RequireFromString("7.95"),
			Description: "Moisture-wicking performance tee. Lightweight, comfortable, and athletic.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/51eg55uWmdL._AC_UX679_.jpg",
			Rating:      response.Rating{Rate: 4.5, Count: 450},
		},
		{
			Id:          "15",
			Title:       "DANVOUY Womens T Shirt Casual Cotton Short",
			Price:       decimal.RequireFromString("12.99"),
			Description: "Stylish t-shirt with graphic print. Great for everyday wear.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/61pHAEJ4NML._AC_UX679_.jpg",
			Rating:      response.Rating{Rate: 4.1, Count: 300},
		},
		{
			Id:          "16",
			Title:       "Cotton Hooded Zip Jacket",
			Price:       decimal.RequireFromString("42.99"),
			Description: "Comfortable, breathable hoodie with zip-up front and pockets.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71li-ujtlUL._AC_UX679_.jpg",
			Rating:      response.Rating{Rate: 4.3, Count: 120},
		},
		{
			Id:          "17",
			Title:       "Casual Men's Wrist Watch",
			Price:       decimal.RequireFromString("79.99"),
			Description: "Elegant analog wrist watch with a leather band and classic face.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/71fwbMm1NBL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.4, Count: 250},
		},
		{
			Id:          "18",
			Title:       "Bluetooth Over-Ear Headphones",
			Price:       decimal.RequireFromString("89.99"),
			Description: "Noise-canceling Bluetooth headphones with 20-hour battery life.",
			Category:    "electronics",
			Image:       "https://fakestoreapi.com/img/81OaXwn1x4L._AC_SX679_.jpg",
			Rating:      response.Rating{Rate: 4.6, Count: 310},
		},
		{
			Id:          "19",
			Title:       "Elegant Silver Pendant Necklace",
			Price:       decimal.RequireFromString("29.99"),
			Description: "Stunning silver necklace with a heart-shaped pendant and crystal inlay.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/61sbMiUnoGL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.2, Count: 200},
		},
		{
			Id:          "20",
			Title:       "Men's Waterproof Sports Watch",
			Price:       decimal.RequireFromString("59.99"),
			Description: "Durable and waterproof sports watch with stopwatch and LED display.",
			Category:    "jewelery",
			Image:       "https://fakestoreapi.com/img/61aP3mxf+GL._AC_UL640_QL65_ML3_.jpg",
			Rating:      response.Rating{Rate: 4.5, Count: 280},
		},
	}
}

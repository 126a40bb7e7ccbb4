package catalog

import "strings"

// Image fallbacks served when the backend record carries no upload.
const (
	defaultProductImage  = "https://ionicframework.com/docs/img/demos/card-media.png"
	defaultCategoryImage = "https://www.recetasnestle.com.ec/sites/default/files/2021-12/tazas-con-tipos-de-cafe_1.jpg"
)

// assetRoot strips the /api suffix off the injected base URL; uploads are
// served from the site root.
func assetRoot(baseURL string) string {
	return strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
}

// ProductImageURL resolves the product's image against the backend's upload
// path, falling back to a stock picture.
func ProductImageURL(baseURL string, p Product) string {
	if p.ImageURL == "" {
		return defaultProductImage
	}
	return assetRoot(baseURL) + "/uploads/productos/" + p.ImageURL
}

// CategoryImageURL resolves the category's image, with its own fallback.
func CategoryImageURL(baseURL string, c Category) string {
	if c.Image == "" {
		return defaultCategoryImage
	}
	return assetRoot(baseURL) + "/uploads/categorias/" + c.Image
}

// Package api serves rendered heatmaps over HTTP.
//
// Routes:
//
//	GET /health                 liveness check
//	GET /api/v1/heatmap         rendered image, format chosen by ?format=
//	GET /api/v1/heatmap.png     rendered PNG
//	GET /api/v1/stats           summary of the loaded tracks
//
// Heatmap queries accept zoom, blur, stroke, scale, bbox
// (min_lat,min_lon,max_lat,max_lon) and RFC 3339 from/to bounds.
package api

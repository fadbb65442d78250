// Package trapapi is the HTTP client for the camera-trap metadata server.
//
// # Endpoints
//
//   - GET  /api/browse_folders[?path=]   folder listing
//   - POST /api/load_folder              scan a folder, returns the image count
//   - GET  /api/image/{index}            descriptive fields and metadata
//   - GET  /api/image_file/{index}?t=    raw image bytes
//   - POST /api/save_metadata            persist edited fields
//   - GET  /api/extract_footer/{index}   footer band read by the server
//   - POST /api/identify_species         identify a region of the image
//   - POST /api/parse_manual_footer      parse footer text typed by the user
//
// Every JSON response may carry success and error fields. A success:false
// body or an HTTP status of 400 and above is returned as an apperrors server
// error; requests that fail before a response is decoded are transport
// errors. Each request carries a fresh X-Request-ID so client and server logs
// can be correlated.
//
// Metadata keeps the server's key order, which the form uses for display and
// the export command uses for YAML output.
package trapapi

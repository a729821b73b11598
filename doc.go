// Package docxsign stamps a validation banner into the footers of Word
// (.docx) documents using headless Chrome.
//
// # Quick Start
//
// Create a signer, sign a document, and close when done:
//
//	signer, err := docxsign.NewSigner()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer signer.Close()
//
//	result, err := signer.Sign(ctx, docxsign.Input{
//	    Document: data,
//	    Params: docxsign.Params{
//	        Link: "https://example.org/validate/",
//	        UUID: docxsign.UUIDAuto,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("signed.docx", result.Document, 0644)
//
// The result also carries the banner PNG (result.Banner) and the UUID it
// prints, which differs from the input when UUIDAuto was requested.
//
// # Signing Pipeline
//
// Sign runs these stages:
//
//  1. Page normalization: every section gets the page size and margins of
//     the profile (A4 unless Input.Profile is set)
//  2. Banner rendering: the HTML template is executed with the params and
//     screenshotted at BannerWidth pixels via go-rod
//  3. Footer composition: each footer shown by a section is emptied and
//     receives the banner at the usable page width, linked to Params.Link
//
// # Configuration
//
// Use functional options to customize the signer:
//
//	signer, err := docxsign.NewSigner(
//	    docxsign.WithTimeout(time.Minute),
//	    docxsign.WithTemplate("compact"),
//	    docxsign.WithAssetPath("/path/to/custom/assets"),
//	    docxsign.WithScale(2),
//	)
//
// # Banner Templates
//
// Templates are html/template files receiving .Link, .UUID, .ValidationURL,
// .Date and .Note. Params.Note is Markdown, converted to HTML before the
// template runs. Relative image and stylesheet paths resolve against the
// template's directory. Built-in templates: "default" and "compact".
//
// # Browser
//
// The first Sign launches Chrome; Rod downloads Chromium when none is found.
// Set ROD_BROWSER_BIN to use an installed browser and ROD_NO_SANDBOX=1 in
// containers.
package docxsign

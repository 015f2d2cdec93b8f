package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 * 1024 * 1024

// maxImageEdge keeps stored documents readable but small.
const maxImageEdge = 1600

// ConvertImageToWebP decodes an uploaded image, bounds its longest edge and
// re-encodes it as WebP. Non-image payloads come back as an error.
func ConvertImageToWebP(fileHeader *multipart.FileHeader) (*bytes.Buffer, error) {
	if fileHeader.Size > maxUploadBytes {
		return nil, fmt.Errorf("fichier trop volumineux (%d Ko, max %d Ko)", fileHeader.Size/1024, maxUploadBytes/1024)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("impossible d'ouvrir le fichier: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("image invalide: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("conversion webp échouée: %w", err)
	}
	return buf, nil
}

func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

// UploadToSupabase PUTs the payload into a Supabase Storage bucket and
// returns the public URL. The bucket must allow public reads.
func UploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return "", fmt.Errorf("SUPABASE_PROJECT_URL ou SUPABASE_SERVICE_ROLE_KEY non défini")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return "", fmt.Errorf("création de la requête upload échouée: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true") // re-upload replaces the previous document

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("envoi de la requête upload échoué: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload échoué status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		supabaseURL, bucket, filename), nil
}

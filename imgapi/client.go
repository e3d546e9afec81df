package imgapi

import (
	"context"
	"net/http"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/httpclient"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues IMGAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates an IMGAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListImages lists image manifests matching the filter.
func (i *Client) ListImages(ctx context.Context, params ListParams) ([]Image, error) {
	return client.Get[[]Image](ctx, i.c, triton.ServiceIMGAPI, "/images",
		client.WithQueryParams(params.query()))
}

// GetImage fetches one image manifest by UUID.
func (i *Client) GetImage(ctx context.Context, uuid string) (*Image, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	img, err := client.Get[Image](ctx, i.c, triton.ServiceIMGAPI, "/images/"+uuid)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// CreateImage creates an image manifest in the unactivated state.
func (i *Client) CreateImage(ctx context.Context, req CreateRequest) (*Image, error) {
	v := validation.New().
		Required("name", req.Name).
		Required("version", req.Version).
		Required("os", req.OS).
		Required("type", req.Type)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	img, err := client.Post[Image](ctx, i.c, triton.ServiceIMGAPI, "/images", req)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// UpdateImage modifies mutable manifest attributes. IMGAPI models
// updates as an action on the image resource.
func (i *Client) UpdateImage(ctx context.Context, uuid string, req UpdateRequest) (*Image, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	img, err := client.Post[Image](ctx, i.c, triton.ServiceIMGAPI, "/images/"+uuid, req,
		client.WithQuery("action", "update"))
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes an image manifest and its stored files.
func (i *Client) DeleteImage(ctx context.Context, uuid string) error {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return err
	}
	return client.Delete(ctx, i.c, triton.ServiceIMGAPI, "/images/"+uuid)
}

// ActivateImage makes an image with an uploaded file provisionable.
func (i *Client) ActivateImage(ctx context.Context, uuid string) (*Image, error) {
	return i.action(ctx, uuid, "activate")
}

// DisableImage hides an image from provisioning without deleting it.
func (i *Client) DisableImage(ctx context.Context, uuid string) (*Image, error) {
	return i.action(ctx, uuid, "disable")
}

// EnableImage re-enables a disabled image.
func (i *Client) EnableImage(ctx context.Context, uuid string) (*Image, error) {
	return i.action(ctx, uuid, "enable")
}

func (i *Client) action(ctx context.Context, uuid, action string) (*Image, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	img, err := client.Post[Image](ctx, i.c, triton.ServiceIMGAPI, "/images/"+uuid, nil,
		client.WithQuery("action", action))
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// AddImageFile uploads the file for an unactivated image. The data is
// buffered so the upload can be retried.
func (i *Client) AddImageFile(ctx context.Context, uuid string, data []byte, compression string) (*Image, error) {
	v := validation.New().
		RequiredUUID("uuid", uuid).
		OneOf("compression", compression, "none", "gzip", "bzip2", "xz")
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if compression == "" {
		compression = "none"
	}

	resp, err := i.c.Do(ctx, triton.ServiceIMGAPI, httpclient.Request{
		Method:  http.MethodPut,
		Path:    "/images/" + uuid + "/file",
		Headers: map[string]string{"Content-Type": "application/octet-stream"},
		Query:   map[string]string{"compression": compression},
		Body:    data,
	})
	if err != nil {
		return nil, err
	}

	var img Image
	if err := resp.Decode(&img); err != nil {
		return nil, err
	}
	return &img, nil
}

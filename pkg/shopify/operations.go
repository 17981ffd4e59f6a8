package shopify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Default metafield coordinates used when a caller does not name them.
const (
	DefaultMetafieldNamespace = "my_field"
	DefaultMetafieldKey       = "liner_material"
	DefaultMetafieldType      = "single_line_text_field"
)

var (
	opListDiscounts = Operation{Name: "ListDiscounts", Query: `query ListDiscounts($first: Int!) {
  codeDiscountNodes(first: $first) {
    nodes {
      id
      codeDiscount {
        ... on DiscountCodeBasic {
          title
          codes(first: 1) { nodes { code } }
        }
        ... on DiscountCodeBxgy {
          title
          codes(first: 1) { nodes { code } }
        }
        ... on DiscountCodeFreeShipping {
          title
          codes(first: 1) { nodes { code } }
        }
      }
    }
  }
}`}

	opListProducts = Operation{Name: "ListProducts", Query: `query ListProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      cursor
      node {
        id
        title
        handle
        status
        featuredImage { url altText }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`}

	opUpdateProductTitle = Operation{Name: "UpdateProductTitle", Query: `mutation UpdateProductTitle($input: ProductInput!) {
  productUpdate(input: $input) {
    product { id title }
    userErrors { field message }
  }
}`}

	opSetProductMetafield = Operation{Name: "SetProductMetafield", Query: `mutation SetProductMetafield($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      metafields(first: 10) {
        edges { node { id namespace key type value } }
      }
    }
    userErrors { field message }
  }
}`}

	opProductsByIDs = Operation{Name: "ProductsByIDs", Query: `query ProductsByIDs($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      handle
      featuredImage { url }
      variants(first: 1) { edges { node { id } } }
    }
  }
}`}
)

// Product is the subset of product data used to render QR code destinations.
type Product struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Handle         string `json:"handle"`
	FirstVariantID string `json:"firstVariantId,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// Metafield is a product metafield write. ID is set only when editing an
// existing metafield.
type Metafield struct {
	ID        string `json:"id,omitempty"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

func (m Metafield) withDefaults() Metafield {
	if m.Namespace == "" {
		m.Namespace = DefaultMetafieldNamespace
	}
	if m.Key == "" {
		m.Key = DefaultMetafieldKey
	}
	if m.Type == "" {
		m.Type = DefaultMetafieldType
	}
	return m
}

// ListDiscounts returns the shop's first code discounts.
func (c *Client) ListDiscounts(ctx context.Context, s Session, first int) (json.RawMessage, error) {
	return c.Do(ctx, s, opListDiscounts, map[string]any{"first": first})
}

// ListProducts returns a page of products. An empty after starts from the beginning.
func (c *Client) ListProducts(ctx context.Context, s Session, first int, after string) (json.RawMessage, error) {
	vars := map[string]any{"first": first, "after": nil}
	if after != "" {
		vars["after"] = after
	}
	return c.Do(ctx, s, opListProducts, vars)
}

// UpdateProductTitle renames a product.
func (c *Client) UpdateProductTitle(ctx context.Context, s Session, productID, title string) (json.RawMessage, error) {
	return c.Do(ctx, s, opUpdateProductTitle, map[string]any{
		"input": map[string]any{"id": productID, "title": title},
	})
}

// SetProductMetafield creates or updates one metafield on a product.
func (c *Client) SetProductMetafield(ctx context.Context, s Session, productID string, m Metafield) (json.RawMessage, error) {
	return c.Do(ctx, s, opSetProductMetafield, map[string]any{
		"input": map[string]any{
			"id":         productID,
			"metafields": []Metafield{m.withDefaults()},
		},
	})
}

type productNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID string `json:"id"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

// ProductsByIDs resolves products in a single call. Ids the shop does not
// know (deleted products) are absent from the returned map.
func (c *Client) ProductsByIDs(ctx context.Context, s Session, ids []string) (map[string]Product, error) {
	products := make(map[string]Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	data, err := c.Do(ctx, s, opProductsByIDs, map[string]any{"ids": ids})
	if err != nil {
		return nil, err
	}

	var out struct {
		Nodes []*productNode `json:"nodes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &APIError{Operation: opProductsByIDs.Name, Err: fmt.Errorf("decode nodes: %w", err)}
	}

	for _, n := range out.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		p := Product{ID: n.ID, Title: n.Title, Handle: n.Handle}
		if n.FeaturedImage != nil {
			p.ImageURL = n.FeaturedImage.URL
		}
		if len(n.Variants.Edges) > 0 {
			p.FirstVariantID = n.Variants.Edges[0].Node.ID
		}
		products[p.ID] = p
	}
	return products, nil
}

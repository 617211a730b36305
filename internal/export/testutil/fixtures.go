package testutil

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentFixture provides sample documents for export tests
type DocumentFixture struct{}

// NewDocumentFixture creates a new DocumentFixture instance
func NewDocumentFixture() *DocumentFixture {
	return &DocumentFixture{}
}

// VisaApplications returns documents with an "id" field on some rows and the
// "na" marker in several columns.
func (f *DocumentFixture) VisaApplications() []bson.D {
	return []bson.D{
		{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "id", Value: "EZYV01"},
			{Key: "continent", Value: "Asia"},
			{Key: "education_of_employee", Value: "High School"},
			{Key: "no_of_employees", Value: int32(14513)},
			{Key: "case_status", Value: "Denied"},
		},
		{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "id", Value: "EZYV02"},
			{Key: "continent", Value: "na"},
			{Key: "education_of_employee", Value: "Master's"},
			{Key: "no_of_employees", Value: int32(2412)},
			{Key: "case_status", Value: "Certified"},
		},
		{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "continent", Value: "Europe"},
			{Key: "education_of_employee", Value: "na"},
			{Key: "case_status", Value: "na"},
			{Key: "region_of_employment", Value: "West"},
		},
	}
}

// MarkerCount counts top-level values equal to the "na" marker.
func (f *DocumentFixture) MarkerCount(docs []bson.D) int {
	n := 0
	for _, d := range docs {
		for _, e := range d {
			if s, ok := e.Value.(string); ok && s == "na" {
				n++
			}
		}
	}
	return n
}

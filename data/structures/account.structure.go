package structures

import "github.com/seventv/tracker/data/model"

type Account struct {
	ID        int64  `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	// Tracked accounts are polled by the ingestion pipeline
	Tracked bool `bson:"tracked"`
}

func (x Account) ToModel() model.Account {
	return model.Account{
		ID:        x.ID,
		FirstName: x.FirstName,
		LastName:  x.LastName,
	}
}

package services

import "github.com/hanzala183/goSwim/models"

// seedPools returns the fixed demonstration set appended to every fallback
// listing so the result is never empty. Not user-editable; none of these
// carry live data.
func seedPools() []models.UnifiedPoolResult {
	return []models.UnifiedPoolResult{
		demoPool("Aqua Swimming Pool", "123 Main Road, Attapur", 17.3850, 78.4867,
			sameHoursAllWeek("9:00 AM - 6:00 PM"), false, false, false),
		demoPool("Blue Wave Swimming Club", "45 Lake View Road, Attapur", 17.3855, 78.4870,
			sameHoursAllWeek("8:00 AM - 7:00 PM"), true, true, true),
		demoPool("Crystal Clear Pool", "78 Waterfront Drive, Attapur", 17.3845, 78.4865,
			sameHoursAllWeek("7:00 AM - 8:00 PM"), true, true, false),
		demoPool("Swimmers Place", "321 Sports Complex Road, Attapur", 17.3860, 78.4880,
			models.OpeningHours{
				"monday": "7:00 AM - 9:00 PM", "tuesday": "7:00 AM - 9:00 PM",
				"wednesday": "7:00 AM - 9:00 PM", "thursday": "7:00 AM - 9:00 PM",
				"friday": "7:00 AM - 9:00 PM", "saturday": "8:00 AM - 8:00 PM",
				"sunday": "8:00 AM - 8:00 PM",
			}, true, true, true),
	}
}

func demoPool(name, address string, lat, lng float64, hours models.OpeningHours, lifeguard, emergency, cctv bool) models.UnifiedPoolResult {
	return models.UnifiedPoolResult{
		SwimmingPool: models.SwimmingPool{
			PoolName:                    name,
			Address:                     address,
			City:                        "Hyderabad",
			PostalCode:                  "500018",
			Latitude:                    lat,
			Longitude:                   lng,
			ContactNumber:               notAvailable,
			Email:                       notAvailable,
			OpeningHours:                hours,
			LifeguardAvailable:          lifeguard,
			EmergencyEquipmentAvailable: emergency,
			CCTVInstalled:               cctv,
			ChangingRoomsAvailable:      true,
			LockerFacility:              true,
		},
		HasLiveData: false,
	}
}

func sameHoursAllWeek(hours string) models.OpeningHours {
	all := make(models.OpeningHours, len(weekdays))
	for _, day := range weekdays {
		all[day] = hours
	}
	return all
}
